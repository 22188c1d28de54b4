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

type todoRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	AssignedEmail string `json:"assigned_email" validate:"omitempty,email"`
	DueDate       string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (data todoRequest) apply(todo *models.Todo) {
	todo.Title = data.Title
	todo.Description = data.Description
	todo.AssignedEmail = data.AssignedEmail
	if len(data.DueDate) > 0 {
		date, _ := time.Parse("2006-01-02", data.DueDate)
		due := datatypes.Date(date)
		todo.DueDate = &due
	} else {
		todo.DueDate = nil
	}
}

func (v *API) listMeetingTodo(c *fiber.Ctx) error {
	meetingId, _ := c.ParamsInt("meetingId", 0)

	todos, err := v.todos.ListTodoWithMeeting(uint(meetingId))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"todos":            todos,
		"ordering_enabled": v.todos.OrderingEnabled(),
	})
}

func (v *API) createMeetingTodo(c *fiber.Ctx) error {
	user := currentUser(c)
	meetingId, _ := c.ParamsInt("meetingId", 0)

	var data todoRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := v.meetings.GetMeeting(uint(meetingId)); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	id := uint(meetingId)
	todo := models.Todo{MeetingID: &id}
	data.apply(&todo)

	todo, err := v.todos.NewTodo(user, todo)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(todo)
}

func (v *API) reorderTodos(c *fiber.Ctx) error {
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

	if err := v.todos.ReorderTodos(uint(meetingId), data.Sequence, data.Dragged, data.Position); err != nil {
		if errors.Is(err, services.ErrOrderingDisabled) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	order, err := v.todos.CurrentTodoOrder(uint(meetingId))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"order": order})
}

func (v *API) listOwnedTodo(c *fiber.Ctx) error {
	user := currentUser(c)

	todos, err := v.todos.ListTodoWithUser(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(todos)
}

func (v *API) createTodo(c *fiber.Ctx) error {
	user := currentUser(c)

	var data todoRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var todo models.Todo
	data.apply(&todo)

	todo, err := v.todos.NewTodo(user, todo)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(todo)
}

func (v *API) editTodo(c *fiber.Ctx) error {
	user := currentUser(c)
	todoId, _ := c.ParamsInt("todoId", 0)

	var data todoRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	todo, err := v.todos.GetTodo(uint(todoId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	data.apply(&todo)

	todo, err = v.todos.EditTodo(user, todo)
	if err != nil {
		if errors.Is(err, services.ErrNotTodoOwner) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(todo)
}

func (v *API) setTodoStatus(c *fiber.Ctx) error {
	user := currentUser(c)
	todoId, _ := c.ParamsInt("todoId", 0)

	var data struct {
		Status string `json:"status" validate:"required,oneof=pending done"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	todo, err := v.todos.SetTodoStatus(user, uint(todoId), models.TodoStatus(data.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotTodoOwner):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		default:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(todo)
}

func (v *API) deleteTodo(c *fiber.Ctx) error {
	user := currentUser(c)
	todoId, _ := c.ParamsInt("todoId", 0)

	if err := v.todos.DeleteTodo(user, uint(todoId)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotTodoOwner):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		default:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return c.SendStatus(fiber.StatusOK)
}
