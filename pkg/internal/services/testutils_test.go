package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("unable to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.MagicToken{},
		&models.Meeting{},
		&models.MeetingParticipant{},
		&models.Todo{},
		&models.DiscussionItem{},
	); err != nil {
		t.Fatalf("unable to migrate test database: %v", err)
	}

	return db
}

func testAccount(t *testing.T, db *gorm.DB, email string) models.Account {
	t.Helper()

	account := models.Account{
		Email:    email,
		Password: "not-a-real-hash",
		Profile:  models.Profile{Email: email, FullName: "Test User"},
	}
	if err := db.Save(&account).Error; err != nil {
		t.Fatalf("unable to create test account: %v", err)
	}

	return account
}

func testMeeting(t *testing.T, meetings *MeetingService, creator models.Account, recurring bool) models.Meeting {
	t.Helper()

	meeting := models.Meeting{
		Title:           "Weekly Sync",
		ScheduledDate:   datatypes.Date(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		ScheduledTime:   "10:00",
		DurationMinutes: 60,
		IsRecurring:     recurring,
	}
	if recurring {
		freq := "weekly"
		meeting.Frequency = &freq
	}

	meeting, err := meetings.NewMeeting(creator, meeting)
	if err != nil {
		t.Fatalf("unable to create test meeting: %v", err)
	}

	return meeting
}
