package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/timetomeet/meetinghub/pkg/internal/http/exts"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"github.com/timetomeet/meetinghub/pkg/internal/services"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type meetingRequest struct {
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description"`
	ScheduledDate   string  `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime   string  `json:"scheduled_time" validate:"required"`
	DurationMinutes int     `json:"duration_minutes"`
	Location        string  `json:"location"`
	IsRecurring     bool    `json:"is_recurring"`
	Frequency       *string `json:"frequency"`
}

func (data meetingRequest) apply(meeting *models.Meeting) {
	date, _ := time.Parse("2006-01-02", data.ScheduledDate)

	meeting.Title = data.Title
	meeting.Description = data.Description
	meeting.ScheduledDate = datatypes.Date(date)
	meeting.ScheduledTime = data.ScheduledTime
	meeting.Location = data.Location
	meeting.IsRecurring = data.IsRecurring
	meeting.DurationMinutes = data.DurationMinutes
	if meeting.DurationMinutes <= 0 {
		meeting.DurationMinutes = 60
	}
	if data.IsRecurring {
		meeting.Frequency = data.Frequency
	} else {
		meeting.Frequency = nil
	}
}

func (v *API) listMeeting(c *fiber.Ctx) error {
	user := currentUser(c)
	upcomingOnly := c.QueryBool("upcoming", false)

	meetings, err := v.meetings.ListMeetingWithUser(user, upcomingOnly)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(meetings)
}

func (v *API) getMeeting(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("meetingId", 0)

	meeting, err := v.meetings.GetMeeting(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(meeting)
}

func (v *API) createMeeting(c *fiber.Ctx) error {
	user := currentUser(c)

	var data meetingRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var meeting models.Meeting
	data.apply(&meeting)

	meeting, err := v.meetings.NewMeeting(user, meeting)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(meeting)
}

func (v *API) editMeeting(c *fiber.Ctx) error {
	user := currentUser(c)
	id, _ := c.ParamsInt("meetingId", 0)

	var data meetingRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	meeting, err := v.meetings.GetMeeting(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	data.apply(&meeting)

	meeting, err = v.meetings.EditMeeting(user, meeting)
	if err != nil {
		if errors.Is(err, services.ErrNotMeetingCreator) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(meeting)
}

func (v *API) deleteMeeting(c *fiber.Ctx) error {
	user := currentUser(c)
	id, _ := c.ParamsInt("meetingId", 0)

	meeting, err := v.meetings.GetMeeting(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := v.meetings.DeleteMeeting(user, meeting); err != nil {
		if errors.Is(err, services.ErrNotMeetingCreator) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

func (v *API) endMeeting(c *fiber.Ctx) error {
	user := currentUser(c)
	id, _ := c.ParamsInt("meetingId", 0)

	meeting, err := v.meetings.EndMeeting(user, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotMeetingCreator):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		default:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(meeting)
}

func (v *API) closeMeeting(c *fiber.Ctx) error {
	user := currentUser(c)
	id, _ := c.ParamsInt("meetingId", 0)

	meeting, err := v.meetings.CloseMeeting(user, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotMeetingCreator):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		default:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(meeting)
}
