package services

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotMeetingCreator   = errors.New("only the meeting creator can perform this action")
	ErrNotMeetingMember    = errors.New("you are not part of this meeting")
	ErrMeetingAlreadyEnded = errors.New("this meeting has already ended")
)

type MeetingService struct {
	db      *gorm.DB
	postman *Postman
}

func NewMeetingService(db *gorm.DB, postman *Postman) *MeetingService {
	return &MeetingService{db: db, postman: postman}
}

// NewMeeting persists the meeting and records its creator as the organizer
// participant, so summary and reminder mail reaches them too.
func (v *MeetingService) NewMeeting(user models.Account, meeting models.Meeting) (models.Meeting, error) {
	meeting.CreatedByID = user.ID
	meeting.Status = models.MeetingStatusScheduled
	meeting.Participants = []models.MeetingParticipant{
		{
			AccountID: &user.ID,
			Email:     user.Email,
			Role:      models.ParticipantRoleOrganizer,
			Status:    models.ParticipantStatusAccepted,
		},
	}

	err := v.db.Save(&meeting).Error

	return meeting, err
}

func (v *MeetingService) GetMeeting(id uint) (models.Meeting, error) {
	var meeting models.Meeting
	if err := v.db.
		Preload("CreatedBy").
		Preload("CreatedBy.Profile").
		Preload("Participants").
		Preload("Todos", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Preload("DiscussionItems", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status = ?", models.DiscussionStatusPending).
				Order("order_index ASC")
		}).
		First(&meeting, "id = ?", id).Error; err != nil {
		return meeting, err
	}

	return meeting, nil
}

// ListMeetingWithUser returns the meetings the user created or was invited
// to. Upcoming narrows to today-or-later meetings still in the scheduled
// state; ended and closed ones stay reachable through the full listing.
func (v *MeetingService) ListMeetingWithUser(user models.Account, upcomingOnly bool) ([]models.Meeting, error) {
	var memberships []models.MeetingParticipant
	if err := v.db.Where("account_id = ?", user.ID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	idx := lo.Map(memberships, func(item models.MeetingParticipant, index int) uint {
		return item.MeetingID
	})

	tx := v.db.Where("created_by_id = ? OR id IN ?", user.ID, idx)
	if upcomingOnly {
		tx = tx.Where("scheduled_date >= ?", time.Now().Format("2006-01-02")).
			Where("status = ?", models.MeetingStatusScheduled)
	}

	var meetings []models.Meeting
	if err := tx.Order("scheduled_date ASC").Find(&meetings).Error; err != nil {
		return meetings, err
	}

	return meetings, nil
}

// EnsureMember verifies the account created the meeting or holds a
// participant row on it. Mutations scoped to a meeting's lists go through
// this before touching anything.
func (v *MeetingService) EnsureMember(user models.Account, meetingId uint) error {
	var meeting models.Meeting
	if err := v.db.First(&meeting, "id = ?", meetingId).Error; err != nil {
		return err
	}
	if meeting.CreatedByID == user.ID {
		return nil
	}

	var count int64
	if err := v.db.Model(&models.MeetingParticipant{}).
		Where("meeting_id = ? AND account_id = ?", meetingId, user.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotMeetingMember
	}

	return nil
}

func (v *MeetingService) EditMeeting(user models.Account, meeting models.Meeting) (models.Meeting, error) {
	if meeting.CreatedByID != user.ID {
		return meeting, ErrNotMeetingCreator
	}

	err := v.db.Save(&meeting).Error

	return meeting, err
}

func (v *MeetingService) DeleteMeeting(user models.Account, meeting models.Meeting) error {
	if meeting.CreatedByID != user.ID {
		return ErrNotMeetingCreator
	}

	return v.db.Delete(&meeting).Error
}

// EndMeeting runs the end-of-meeting transition. Non-recurring meetings move
// to ended with a timestamp; recurring ones stay scheduled so they can be
// run again. The status write is the commit point: the summary mail is
// attempted afterwards and a delivery failure never rolls the meeting back.
func (v *MeetingService) EndMeeting(user models.Account, meetingId uint) (models.Meeting, error) {
	var meeting models.Meeting
	if err := v.db.Preload("Participants").First(&meeting, "id = ?", meetingId).Error; err != nil {
		return meeting, err
	}

	if meeting.CreatedByID != user.ID {
		return meeting, ErrNotMeetingCreator
	}
	if !meeting.IsRecurring && meeting.Status == models.MeetingStatusEnded {
		return meeting, ErrMeetingAlreadyEnded
	}

	if !meeting.IsRecurring {
		now := time.Now()
		meeting.Status = models.MeetingStatusEnded
		meeting.EndedAt = &now
		if err := v.db.Save(&meeting).Error; err != nil {
			return meeting, err
		}
	}

	if err := v.deliverSummary(meeting); err != nil {
		log.Warn().Err(err).Uint("meeting", meeting.ID).
			Msg("Unable to deliver meeting summary, the meeting state transition was kept...")
	}

	return meeting, nil
}

func (v *MeetingService) deliverSummary(meeting models.Meeting) error {
	emails := lo.FilterMap(meeting.Participants, func(item models.MeetingParticipant, idx int) (string, bool) {
		return item.Email, len(item.Email) > 0
	})
	if len(emails) == 0 {
		log.Debug().Uint("meeting", meeting.ID).Msg("No participants to send summary to, skipping...")
		return nil
	}

	var items []models.DiscussionItem
	if err := v.db.
		Where("meeting_id = ? AND status = ?", meeting.ID, models.DiscussionStatusDone).
		Order("updated_at DESC").
		Find(&items).Error; err != nil {
		return err
	}

	var todos []models.Todo
	if err := v.db.Where("meeting_id = ?", meeting.ID).Find(&todos).Error; err != nil {
		return err
	}

	return v.postman.DeliverSummary(emails, meeting, items, todos)
}

// CloseMeeting archives a meeting out of upcoming views without deleting
// anything. Closing and ending are orthogonal.
func (v *MeetingService) CloseMeeting(user models.Account, meetingId uint) (models.Meeting, error) {
	var meeting models.Meeting
	if err := v.db.First(&meeting, "id = ?", meetingId).Error; err != nil {
		return meeting, err
	}

	if meeting.CreatedByID != user.ID {
		return meeting, ErrNotMeetingCreator
	}

	meeting.Status = models.MeetingStatusClosed
	err := v.db.Save(&meeting).Error

	return meeting, err
}
