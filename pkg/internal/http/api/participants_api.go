package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/timetomeet/meetinghub/pkg/internal/http/exts"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"github.com/timetomeet/meetinghub/pkg/internal/services"
	"gorm.io/gorm"
)

func (v *API) listParticipant(c *fiber.Ctx) error {
	meetingId, _ := c.ParamsInt("meetingId", 0)

	participants, err := v.participants.ListParticipant(uint(meetingId))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(participants)
}

func (v *API) inviteParticipant(c *fiber.Ctx) error {
	user := currentUser(c)
	meetingId, _ := c.ParamsInt("meetingId", 0)

	var data struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	participant, err := v.participants.InviteParticipant(user, uint(meetingId), data.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotMeetingCreator):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrParticipantExists):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		default:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(participant)
}

func (v *API) removeParticipant(c *fiber.Ctx) error {
	user := currentUser(c)
	meetingId, _ := c.ParamsInt("meetingId", 0)
	participantId, _ := c.ParamsInt("participantId", 0)

	if err := v.participants.RemoveParticipant(user, uint(meetingId), uint(participantId)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotMeetingCreator):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		default:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return c.SendStatus(fiber.StatusOK)
}

func (v *API) respondInvitation(c *fiber.Ctx) error {
	user := currentUser(c)
	meetingId, _ := c.ParamsInt("meetingId", 0)

	var data struct {
		Status string `json:"status" validate:"required,oneof=accepted declined"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	participant, err := v.participants.RespondInvitation(user, uint(meetingId), models.ParticipantStatus(data.Status))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(participant)
}
