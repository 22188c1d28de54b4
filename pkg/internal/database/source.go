package database

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// NewSource opens the relational data store configured at database.dsn.
// The handle is passed to services explicitly instead of being kept in a
// package variable, so nothing shares hidden client state.
func NewSource() (*gorm.DB, error) {
	dsn := viper.GetString("database.dsn")

	source, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: viper.GetString("database.prefix"),
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	log.Info().Msg("Database connected.")

	return source, nil
}
