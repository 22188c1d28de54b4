package services

import (
	"errors"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/gorm"
)

var ErrNotTodoOwner = errors.New("only the creator or assignee can modify this task")

type TodoService struct {
	db              *gorm.DB
	orderingEnabled bool
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{
		db:              db,
		orderingEnabled: viper.GetBool("features.todo_ordering"),
	}
}

// OrderingEnabled reports whether user-controlled todo ordering is available
// on this deployment. When it is off the drag affordance is disabled
// client-side and listings fall back to the due-date sort.
func (v *TodoService) OrderingEnabled() bool {
	return v.orderingEnabled
}

func (v *TodoService) NewTodo(user models.Account, todo models.Todo) (models.Todo, error) {
	todo.CreatedByID = user.ID
	todo.Status = models.TodoStatusPending

	if len(todo.AssignedEmail) > 0 && todo.AssignedToID == nil {
		var profile models.Profile
		if err := v.db.Where(&models.Profile{Email: todo.AssignedEmail}).
			First(&profile).Error; err == nil {
			todo.AssignedToID = &profile.AccountID
		}
	}

	if v.orderingEnabled && todo.MeetingID != nil {
		var count int64
		if err := v.db.Model(&models.Todo{}).
			Where("meeting_id = ?", *todo.MeetingID).
			Count(&count).Error; err != nil {
			return todo, err
		}
		position := int(count)
		todo.OrderIndex = &position
	}

	err := v.db.Save(&todo).Error

	return todo, err
}

func (v *TodoService) GetTodo(id uint) (models.Todo, error) {
	var todo models.Todo
	if err := v.db.First(&todo, "id = ?", id).Error; err != nil {
		return todo, err
	}

	return todo, nil
}

// ListTodoWithMeeting returns a meeting's tasks in display order: the
// user-controlled order first, due date and creation time as tiebreakers.
// With ordering disabled the due-date fallback applies instead.
func (v *TodoService) ListTodoWithMeeting(meetingId uint) ([]models.Todo, error) {
	tx := v.db.Where("meeting_id = ?", meetingId)
	if v.orderingEnabled {
		tx = tx.Order("order_index ASC NULLS LAST, due_date ASC NULLS LAST, created_at ASC")
	} else {
		tx = tx.Order("due_date ASC NULLS LAST, created_at DESC")
	}

	var todos []models.Todo
	if err := tx.Find(&todos).Error; err != nil {
		return todos, err
	}

	return todos, nil
}

// ListTodoWithUser returns everything assigned to or created by the user,
// meeting-bound and standalone alike.
func (v *TodoService) ListTodoWithUser(user models.Account) ([]models.Todo, error) {
	var todos []models.Todo
	if err := v.db.
		Where("assigned_to_id = ? OR created_by_id = ?", user.ID, user.ID).
		Order("due_date ASC NULLS LAST, created_at DESC").
		Find(&todos).Error; err != nil {
		return todos, err
	}

	return todos, nil
}

func (v *TodoService) canModify(user models.Account, todo models.Todo) bool {
	if todo.CreatedByID == user.ID {
		return true
	}
	return todo.AssignedToID != nil && *todo.AssignedToID == user.ID
}

func (v *TodoService) EditTodo(user models.Account, todo models.Todo) (models.Todo, error) {
	if !v.canModify(user, todo) {
		return todo, ErrNotTodoOwner
	}

	err := v.db.Save(&todo).Error

	return todo, err
}

func (v *TodoService) SetTodoStatus(user models.Account, todoId uint, status models.TodoStatus) (models.Todo, error) {
	var todo models.Todo
	if err := v.db.First(&todo, "id = ?", todoId).Error; err != nil {
		return todo, err
	}
	if !v.canModify(user, todo) {
		return todo, ErrNotTodoOwner
	}

	todo.Status = status
	err := v.db.Save(&todo).Error

	return todo, err
}

func (v *TodoService) DeleteTodo(user models.Account, todoId uint) error {
	var todo models.Todo
	if err := v.db.First(&todo, "id = ?", todoId).Error; err != nil {
		return err
	}
	if !v.canModify(user, todo) {
		return ErrNotTodoOwner
	}

	return v.db.Delete(&todo).Error
}

// ReorderTodos persists the order produced by dragging one task to a new
// position within the client's current sequence.
func (v *TodoService) ReorderTodos(meetingId uint, seq []uint, dragged uint, dest int) error {
	if !v.orderingEnabled {
		return ErrOrderingDisabled
	}

	moved := moveID(seq, dragged, dest)
	stored, err := storedOrder(v.db, &models.Todo{}, meetingId)
	if err != nil {
		return err
	}

	return applyOrder(v.db, &models.Todo{}, meetingId, resequence(moved, stored))
}

// CurrentTodoOrder returns the persisted sequence of task ids for a meeting,
// for clients that need to rebase before a drag.
func (v *TodoService) CurrentTodoOrder(meetingId uint) ([]uint, error) {
	todos, err := v.ListTodoWithMeeting(meetingId)
	if err != nil {
		return nil, err
	}
	return lo.Map(todos, func(item models.Todo, idx int) uint {
		return item.ID
	}), nil
}
