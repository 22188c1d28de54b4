package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/timetomeet/meetinghub/pkg/internal/http/exts"
)

func (v *API) getUserinfo(c *fiber.Ctx) error {
	user := currentUser(c)

	account, err := v.accounts.GetAccount(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(account)
}

func (v *API) editUserinfo(c *fiber.Ctx) error {
	user := currentUser(c)

	var data struct {
		FullName string `json:"full_name" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	profile, err := v.accounts.EditProfile(user, data.FullName)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(profile)
}
