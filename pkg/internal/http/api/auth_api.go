package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/timetomeet/meetinghub/pkg/internal/http/exts"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
)

func (v *API) authMiddleware(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if len(token) == 0 {
		token = c.Cookies("auth_token")
	}
	if len(token) == 0 {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	user, err := v.auth.Authenticate(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	c.Locals("user", user)

	return c.Next()
}

func (v *API) signUp(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := v.auth.SignUp(data.Email, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := v.participants.ClaimInvitations(account); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(account)
}

func (v *API) signIn(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	token, account, err := v.auth.SignIn(data.Email, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"account": account,
	})
}

// Sessions are stateless bearer tokens; signing out is the client throwing
// its token away. The endpoint exists for interface parity.
func (v *API) signOut(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func (v *API) requestPasswordReset(c *fiber.Ctx) error {
	var data struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := v.auth.RequestPasswordReset(data.Email); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

func (v *API) resetPassword(c *fiber.Ctx) error {
	var data struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := v.auth.ResetPassword(data.Token, data.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

func currentUser(c *fiber.Ctx) models.Account {
	return c.Locals("user").(models.Account)
}
