package models

type DiscussionStatus = string

const (
	DiscussionStatusPending = DiscussionStatus("pending")
	DiscussionStatusDone    = DiscussionStatus("done")
)

// DiscussionItem is an agenda topic tracked per meeting.
// OrderIndex is assigned at creation as the current list length
// and rewritten by drag reordering.
type DiscussionItem struct {
	BaseModel

	MeetingID   uint             `json:"meeting_id" gorm:"index"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      DiscussionStatus `json:"status" gorm:"default:pending"`
	OrderIndex  int              `json:"order_index"`
	CreatedByID uint             `json:"created_by_id"`
}
