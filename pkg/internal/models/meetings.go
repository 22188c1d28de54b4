package models

import (
	"time"

	"gorm.io/datatypes"
)

type MeetingStatus = string

const (
	MeetingStatusScheduled = MeetingStatus("scheduled")
	MeetingStatusEnded     = MeetingStatus("ended")
	MeetingStatusClosed    = MeetingStatus("closed")
)

type Meeting struct {
	BaseModel

	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ScheduledDate   datatypes.Date  `json:"scheduled_date"`
	ScheduledTime   string          `json:"scheduled_time"`
	DurationMinutes int             `json:"duration_minutes" gorm:"default:60"`
	Location        string          `json:"location"`
	Status          MeetingStatus   `json:"status" gorm:"default:scheduled"`
	IsRecurring     bool            `json:"is_recurring"`
	Frequency       *string         `json:"frequency"`
	EndedAt         *time.Time      `json:"ended_at"`
	ReminderSentAt  *time.Time      `json:"reminder_sent_at"`
	CreatedByID     uint            `json:"created_by_id"`
	CreatedBy       Account         `json:"created_by"`

	Participants    []MeetingParticipant `json:"participants" gorm:"constraint:OnDelete:CASCADE"`
	Todos           []Todo               `json:"todos" gorm:"constraint:OnDelete:CASCADE"`
	DiscussionItems []DiscussionItem     `json:"discussion_items" gorm:"constraint:OnDelete:CASCADE"`
}

// IsUpcoming reports whether the meeting still belongs in upcoming views.
// Only scheduled meetings qualify; ended and closed ones are kept in
// storage but excluded.
func (v Meeting) IsUpcoming(now time.Time) bool {
	if v.Status != MeetingStatusScheduled {
		return false
	}
	date := time.Time(v.ScheduledDate)
	return !date.Before(now.Truncate(24 * time.Hour))
}

type ParticipantRole = string

const (
	ParticipantRoleOrganizer   = ParticipantRole("organizer")
	ParticipantRoleParticipant = ParticipantRole("participant")
)

type ParticipantStatus = string

const (
	ParticipantStatusPending  = ParticipantStatus("pending")
	ParticipantStatusAccepted = ParticipantStatus("accepted")
	ParticipantStatusDeclined = ParticipantStatus("declined")
)

// MeetingParticipant may exist before the invitee has an account,
// in which case AccountID stays nil and only the email is kept.
type MeetingParticipant struct {
	BaseModel

	MeetingID uint              `json:"meeting_id" gorm:"uniqueIndex:idx_meeting_email"`
	AccountID *uint             `json:"account_id"`
	Email     string            `json:"email" gorm:"uniqueIndex:idx_meeting_email"`
	Role      ParticipantRole   `json:"role" gorm:"default:participant"`
	Status    ParticipantStatus `json:"status" gorm:"default:pending"`
}
