package forms

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/inkwell-dev/inkwell/internal/db"
	"github.com/inkwell-dev/inkwell/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open("file:" + filepath.Join(t.TempDir(), "forms-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

func TestPostFormValidate_EmptyTextRejected(t *testing.T) {
	conn := openTestDB(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, fieldErrors, err := PostForm{Text: text}.Validate(context.Background(), conn)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if fieldErrors["text"] != "required field" {
			t.Fatalf("expected text error %q, got %v", "required field", fieldErrors)
		}
	}

	var count int64
	if errCount := conn.Model(&models.Post{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count posts: %v", errCount)
	}
	if count != 0 {
		t.Fatalf("expected no side effects, found %d posts", count)
	}
}

func TestPostFormValidate_UnknownGroupRejected(t *testing.T) {
	conn := openTestDB(t)

	missing := uint64(404)
	_, fieldErrors, err := PostForm{Text: "text", GroupID: &missing}.Validate(context.Background(), conn)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if fieldErrors["group"] != "unknown group" {
		t.Fatalf("expected group error, got %v", fieldErrors)
	}
}

func TestPostFormValidate_NormalizesAndResolvesGroup(t *testing.T) {
	conn := openTestDB(t)

	group := models.Group{Title: "Go", Slug: "go", Description: "gophers"}
	if errCreate := conn.Create(&group).Error; errCreate != nil {
		t.Fatalf("create group: %v", errCreate)
	}

	draft, fieldErrors, err := PostForm{Text: "  body  ", GroupID: &group.ID}.Validate(context.Background(), conn)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if fieldErrors.HasErrors() {
		t.Fatalf("expected no field errors, got %v", fieldErrors)
	}
	if draft.Text != "body" {
		t.Fatalf("expected trimmed text, got %q", draft.Text)
	}
	if draft.GroupID == nil || *draft.GroupID != group.ID {
		t.Fatalf("expected group id %d, got %v", group.ID, draft.GroupID)
	}
	if draft.AuthorID != 0 || !draft.PubDate.IsZero() {
		t.Fatalf("expected author and pub date to be unset on the draft")
	}
}

func TestPostFormValidate_GroupIsOptional(t *testing.T) {
	conn := openTestDB(t)

	draft, fieldErrors, err := PostForm{Text: "no group"}.Validate(context.Background(), conn)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if fieldErrors.HasErrors() {
		t.Fatalf("expected no field errors, got %v", fieldErrors)
	}
	if draft.GroupID != nil {
		t.Fatalf("expected absent group, got %v", draft.GroupID)
	}
}
