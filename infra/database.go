package infra

import (
	"errors"

	"github.com/lumenworks/studiobooks/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDBConnection opens the database and migrates the schema. Default
// per-statement transactions are skipped; the unit of work owns transaction
// boundaries.
func NewDBConnection(cfg config.DB) (*gorm.DB, error) {
	if cfg.Url == "" {
		return nil, errors.New("database url is not set")
	}
	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&Transaction{},
		&Client{},
		&Project{},
		&Card{},
		&Pocket{},
		&TeamMember{},
		&TeamPayment{},
		&Contract{},
		&User{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
