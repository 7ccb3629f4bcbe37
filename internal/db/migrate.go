package db

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/inkwell-dev/inkwell/internal/models"
	internalsettings "github.com/inkwell-dev/inkwell/internal/settings"
	"gorm.io/gorm"
)

// Migrate runs database migrations and seeds default settings.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errAutoMigrate := conn.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Setting{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}
	if errSeed := ensureSiteNameSetting(conn); errSeed != nil {
		return errSeed
	}
	if errSeed := ensurePostsOnPageSetting(conn); errSeed != nil {
		return errSeed
	}
	if errSeed := ensurePreviewLengthSetting(conn); errSeed != nil {
		return errSeed
	}
	return nil
}

// ensureSiteNameSetting seeds the site name setting when absent.
func ensureSiteNameSetting(conn *gorm.DB) error {
	return ensureSetting(conn, internalsettings.SiteNameKey, internalsettings.DefaultSiteName)
}

// ensurePostsOnPageSetting seeds the feed page size setting when absent.
func ensurePostsOnPageSetting(conn *gorm.DB) error {
	return ensureSetting(conn, internalsettings.PostsOnPageKey,
		strconv.Itoa(internalsettings.DefaultPostsOnPage))
}

// ensurePreviewLengthSetting seeds the preview length setting when absent.
func ensurePreviewLengthSetting(conn *gorm.DB) error {
	return ensureSetting(conn, internalsettings.PreviewLengthKey,
		strconv.Itoa(internalsettings.DefaultPreviewLength))
}

// ensureSetting inserts a setting row only when the key is missing.
func ensureSetting(conn *gorm.DB, key, value string) error {
	var existing models.Setting
	errFind := conn.Where("key = ?", key).First(&existing).Error
	if errFind == nil {
		return nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return fmt.Errorf("db: probe setting %s: %w", key, errFind)
	}
	if errCreate := conn.Create(&models.Setting{Key: key, Value: value}).Error; errCreate != nil {
		return fmt.Errorf("db: seed setting %s: %w", key, errCreate)
	}
	return nil
}
