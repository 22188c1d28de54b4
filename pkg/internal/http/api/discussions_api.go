package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/timetomeet/meetinghub/pkg/internal/http/exts"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"github.com/timetomeet/meetinghub/pkg/internal/services"
	"gorm.io/gorm"
)

func (v *API) listDiscussionItem(c *fiber.Ctx) error {
	meetingId, _ := c.ParamsInt("meetingId", 0)

	items, err := v.discussions.ListDiscussionItem(uint(meetingId))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(items)
}

func (v *API) createDiscussionItem(c *fiber.Ctx) error {
	user := currentUser(c)
	meetingId, _ := c.ParamsInt("meetingId", 0)

	var data struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := v.meetings.GetMeeting(uint(meetingId)); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	item := models.DiscussionItem{
		MeetingID:   uint(meetingId),
		Title:       data.Title,
		Description: data.Description,
	}

	item, err := v.discussions.NewDiscussionItem(user, item)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func (v *API) reorderDiscussionItems(c *fiber.Ctx) error {
	user := currentUser(c)
	meetingId, _ := c.ParamsInt("meetingId", 0)

	if err := v.meetings.EnsureMember(user, uint(meetingId)); err != nil {
		if errors.Is(err, services.ErrNotMeetingMember) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	var data struct {
		Sequence []uint `json:"sequence" validate:"required,min=1"`
		Dragged  uint   `json:"dragged" validate:"required"`
		Position int    `json:"position"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := v.discussions.ReorderDiscussionItems(uint(meetingId), data.Sequence, data.Dragged, data.Position); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	items, err := v.discussions.ListDiscussionItem(uint(meetingId))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(items)
}

func (v *API) editDiscussionItem(c *fiber.Ctx) error {
	user := currentUser(c)
	itemId, _ := c.ParamsInt("itemId", 0)

	var data struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := v.discussions.GetDiscussionItem(uint(itemId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	item.Title = data.Title
	item.Description = data.Description

	item, err = v.discussions.EditDiscussionItem(user, item)
	if err != nil {
		if errors.Is(err, services.ErrNotDiscussionOwner) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func (v *API) markDiscussionItemDone(c *fiber.Ctx) error {
	user := currentUser(c)
	itemId, _ := c.ParamsInt("itemId", 0)

	item, err := v.discussions.GetDiscussionItem(uint(itemId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err := v.meetings.EnsureMember(user, item.MeetingID); err != nil {
		if errors.Is(err, services.ErrNotMeetingMember) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	item, err = v.discussions.MarkDiscussionItemDone(uint(itemId))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func (v *API) deleteDiscussionItem(c *fiber.Ctx) error {
	user := currentUser(c)
	itemId, _ := c.ParamsInt("itemId", 0)

	if err := v.discussions.DeleteDiscussionItem(user, uint(itemId)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotDiscussionOwner):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		default:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return c.SendStatus(fiber.StatusOK)
}
