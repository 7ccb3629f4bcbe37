package settings

import (
	"strconv"
	"strings"

	"github.com/inkwell-dev/inkwell/internal/models"
	"gorm.io/gorm"
)

// Value returns the stored settings row for key, reporting whether it
// exists.
func Value(conn *gorm.DB, key string) (string, bool) {
	if conn == nil {
		return "", false
	}
	var setting models.Setting
	if errFind := conn.Where("key = ?", key).First(&setting).Error; errFind != nil {
		return "", false
	}
	return setting.Value, true
}

// ResolveInt returns the stored integer value for key, or fallback when
// the row is missing, non-numeric, or not positive.
func ResolveInt(conn *gorm.DB, key string, fallback int) int {
	raw, ok := Value(conn, key)
	if !ok {
		return fallback
	}
	parsed, errParse := strconv.Atoi(strings.TrimSpace(raw))
	if errParse != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// ResolveString returns the stored value for key, or fallback when the
// row is missing or blank.
func ResolveString(conn *gorm.DB, key, fallback string) string {
	raw, ok := Value(conn, key)
	if !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
