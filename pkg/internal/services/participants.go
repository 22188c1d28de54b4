package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/gorm"
)

var ErrParticipantExists = errors.New("participant already invited")

type ParticipantService struct {
	db      *gorm.DB
	postman *Postman
}

func NewParticipantService(db *gorm.DB, postman *Postman) *ParticipantService {
	return &ParticipantService{db: db, postman: postman}
}

func (v *ParticipantService) ListParticipant(meetingId uint) ([]models.MeetingParticipant, error) {
	var participants []models.MeetingParticipant
	if err := v.db.
		Where(&models.MeetingParticipant{MeetingID: meetingId}).
		Find(&participants).Error; err != nil {
		return participants, err
	}

	return participants, nil
}

// InviteParticipant adds an email to the meeting roster. The row is unique
// per (meeting, email); the invitee may not have an account yet, in which
// case only the email is stored until they sign up. The row is committed
// before any mail is attempted, so a failed or unconfigured mailer still
// leaves the invitation in place.
func (v *ParticipantService) InviteParticipant(op models.Account, meetingId uint, email string) (models.MeetingParticipant, error) {
	var participant models.MeetingParticipant

	var meeting models.Meeting
	if err := v.db.First(&meeting, "id = ?", meetingId).Error; err != nil {
		return participant, err
	}
	if meeting.CreatedByID != op.ID {
		return participant, ErrNotMeetingCreator
	}

	if err := v.db.Where(&models.MeetingParticipant{
		MeetingID: meetingId,
		Email:     email,
	}).First(&participant).Error; err == nil {
		return participant, ErrParticipantExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return participant, err
	}

	// A removed participant leaves a soft-deleted row behind that still
	// occupies the (meeting, email) unique index; revive it as a fresh
	// pending invitation instead of inserting a second row.
	if err := v.db.Unscoped().Where(&models.MeetingParticipant{
		MeetingID: meetingId,
		Email:     email,
	}).First(&participant).Error; err == nil {
		participant.DeletedAt = gorm.DeletedAt{}
		participant.Role = models.ParticipantRoleParticipant
		participant.Status = models.ParticipantStatusPending
		participant.AccountID = nil
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		participant = models.MeetingParticipant{
			MeetingID: meetingId,
			Email:     email,
			Role:      models.ParticipantRoleParticipant,
			Status:    models.ParticipantStatusPending,
		}
	} else {
		return participant, err
	}

	var profile models.Profile
	if err := v.db.Where(&models.Profile{Email: email}).First(&profile).Error; err == nil {
		participant.AccountID = &profile.AccountID
	}

	if err := v.db.Unscoped().Save(&participant).Error; err != nil {
		return participant, err
	}

	if err := v.postman.DeliverInvitation(email, meeting, op.Profile.DisplayName()); err != nil {
		log.Warn().Err(err).Str("email", email).Uint("meeting", meeting.ID).
			Msg("Unable to deliver invitation email, the participant was still added...")
	}

	return participant, nil
}

func (v *ParticipantService) RemoveParticipant(op models.Account, meetingId, participantId uint) error {
	var meeting models.Meeting
	if err := v.db.First(&meeting, "id = ?", meetingId).Error; err != nil {
		return err
	}
	if meeting.CreatedByID != op.ID {
		return ErrNotMeetingCreator
	}

	var participant models.MeetingParticipant
	if err := v.db.Where(&models.MeetingParticipant{
		BaseModel: models.BaseModel{ID: participantId},
		MeetingID: meetingId,
	}).First(&participant).Error; err != nil {
		return err
	}
	if participant.Role == models.ParticipantRoleOrganizer {
		return fmt.Errorf("the organizer cannot be removed from the meeting")
	}

	return v.db.Delete(&participant).Error
}

// RespondInvitation lets an invitee accept or decline their own row.
func (v *ParticipantService) RespondInvitation(user models.Account, meetingId uint, status models.ParticipantStatus) (models.MeetingParticipant, error) {
	var participant models.MeetingParticipant

	if status != models.ParticipantStatusAccepted && status != models.ParticipantStatusDeclined {
		return participant, fmt.Errorf("status must be either accepted or declined")
	}

	if err := v.db.
		Where("meeting_id = ? AND account_id = ?", meetingId, user.ID).
		First(&participant).Error; err != nil {
		return participant, err
	}

	participant.Status = status
	err := v.db.Save(&participant).Error

	return participant, err
}

// ClaimInvitations links pending invitation rows to a freshly created
// account, matched by email.
func (v *ParticipantService) ClaimInvitations(account models.Account) error {
	return v.db.Model(&models.MeetingParticipant{}).
		Where("email = ? AND account_id IS NULL", account.Email).
		Update("account_id", account.ID).Error
}
