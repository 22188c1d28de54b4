package models

import "gorm.io/datatypes"

type TodoStatus = string

const (
	TodoStatusPending = TodoStatus("pending")
	TodoStatusDone    = TodoStatus("done")
)

// Todo is a unit of work, optionally tied to a meeting.
// A nil MeetingID makes it a standalone personal task.
type Todo struct {
	BaseModel

	MeetingID     *uint           `json:"meeting_id" gorm:"index"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	AssignedToID  *uint           `json:"assigned_to_id"`
	AssignedEmail string          `json:"assigned_email"`
	Status        TodoStatus      `json:"status" gorm:"default:pending"`
	DueDate       *datatypes.Date `json:"due_date"`
	OrderIndex    *int            `json:"order_index"`
	CreatedByID   uint            `json:"created_by_id"`
}
