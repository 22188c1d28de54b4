package services

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/timetomeet/meetinghub/pkg/internal/database"
	"gorm.io/gorm"
)

// DoAutoDatabaseCleanup hard-deletes rows that were soft-deleted more than
// an hour ago, across every auto-maintained model.
func DoAutoDatabaseCleanup(source *gorm.DB) {
	deadline := time.Now().Add(-60 * time.Minute)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := source.Unscoped().Delete(model, "deleted_at IS NOT NULL AND deleted_at <= ?", deadline)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running database cleanup...")
		}
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
