package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell-dev/inkwell/internal/models"
	"gorm.io/gorm"
)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// HasErrors reports whether any field failed validation.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// PostForm is a candidate post submission. Author and publication time
// are never part of the form; the write layer injects them at
// persistence time.
type PostForm struct {
	Text    string  `json:"text" form:"text"`
	GroupID *uint64 `json:"group" form:"group"`
}

// Validate checks the form against required-field and referential
// rules. It has no side effects; on success the returned draft carries
// the normalized text and the verified group reference.
func (f PostForm) Validate(ctx context.Context, conn *gorm.DB) (models.Post, FieldErrors, error) {
	fieldErrors := FieldErrors{}

	text := strings.TrimSpace(f.Text)
	if text == "" {
		fieldErrors["text"] = "required field"
	}

	var groupID *uint64
	if f.GroupID != nil {
		var group models.Group
		errFind := conn.WithContext(ctx).First(&group, *f.GroupID).Error
		switch {
		case errFind == nil:
			id := group.ID
			groupID = &id
		case errors.Is(errFind, gorm.ErrRecordNotFound):
			fieldErrors["group"] = "unknown group"
		default:
			return models.Post{}, nil, fmt.Errorf("forms: probe group: %w", errFind)
		}
	}

	if fieldErrors.HasErrors() {
		return models.Post{}, fieldErrors, nil
	}
	return models.Post{Text: text, GroupID: groupID}, nil, nil
}
