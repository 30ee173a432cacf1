package infra

import (
	"context"
	"fmt"
	"os"

	"github.com/amirda88/gas-cylinder-tracker/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// and seeds the default admin account. TranslateError is enabled so that
// unique-constraint violations surface as gorm.ErrDuplicatedKey — the
// barcode allocator's retry loop depends on that.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Cylinder{},
		&model.StatusHistory{},
		&model.MovementLog{},
		&model.BarcodeSequence{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	if err := seedDefaultAdmin(db); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	return db, nil
}

// seedDefaultAdmin creates the initial admin account when no admin exists.
// Credentials come from the environment; the defaults are for development only.
func seedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123!"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Permissions:  model.AllPermissions,
		Active:       true,
	}
	if err := db.WithContext(context.Background()).Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("created default admin user")
	return nil
}
