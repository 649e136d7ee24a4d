package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the postgres connection and stores the handle in DB.
// TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey instead of raw driver errors.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	DB = db
	return db, nil
}
