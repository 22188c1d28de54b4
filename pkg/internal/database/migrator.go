package database

import (
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Profile{},
	&models.MagicToken{},
	&models.Meeting{},
	&models.MeetingParticipant{},
	&models.Todo{},
	&models.DiscussionItem{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(AutoMaintainRange...); err != nil {
		return err
	}

	return nil
}
