package services

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/gorm"
)

type ReminderService struct {
	db      *gorm.DB
	postman *Postman
}

func NewReminderService(db *gorm.DB, postman *Postman) *ReminderService {
	return &ReminderService{db: db, postman: postman}
}

// DeliverDueReminders mails everyone on meetings scheduled for tomorrow.
// Each meeting is stamped after a successful send so repeated cron ticks
// within the same day do not mail twice.
func (v *ReminderService) DeliverDueReminders() {
	if !v.postman.Enabled() {
		return
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var meetings []models.Meeting
	if err := v.db.Preload("Participants").
		Where("status = ? AND scheduled_date = ? AND reminder_sent_at IS NULL",
			models.MeetingStatusScheduled, tomorrow).
		Find(&meetings).Error; err != nil {
		log.Error().Err(err).Msg("An error occurred when looking up meetings due for reminders...")
		return
	}

	for _, meeting := range meetings {
		emails := lo.FilterMap(meeting.Participants, func(item models.MeetingParticipant, idx int) (string, bool) {
			return item.Email, len(item.Email) > 0
		})
		if len(emails) == 0 {
			continue
		}

		if err := v.postman.DeliverReminder(emails, meeting); err != nil {
			log.Warn().Err(err).Uint("meeting", meeting.ID).Msg("Unable to deliver meeting reminder...")
			continue
		}

		now := time.Now()
		if err := v.db.Model(&models.Meeting{}).
			Where("id = ?", meeting.ID).
			Update("reminder_sent_at", now).Error; err != nil {
			log.Error().Err(err).Uint("meeting", meeting.ID).Msg("Unable to stamp reminder delivery...")
		}
	}
}
