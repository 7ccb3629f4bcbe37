package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	dbutil "github.com/inkwell-dev/inkwell/internal/db"
	"github.com/inkwell-dev/inkwell/internal/models"
	"gorm.io/gorm"
)

// GroupHandler manages group lifecycle endpoints.
type GroupHandler struct {
	db *gorm.DB
}

// NewGroupHandler constructs a GroupHandler.
func NewGroupHandler(db *gorm.DB) *GroupHandler {
	return &GroupHandler{db: db}
}

// createGroupRequest defines the request body for group creation.
type createGroupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Create creates a new group.
func (h *GroupHandler) Create(c *gin.Context) {
	var body createGroupRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title"})
		return
	}
	slug := strings.TrimSpace(body.Slug)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing slug"})
		return
	}
	description := strings.TrimSpace(body.Description)
	if description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing description"})
		return
	}

	var existing models.Group
	errProbe := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", slug).First(&existing).Error
	if errProbe == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "slug already taken"})
		return
	}
	if !errors.Is(errProbe, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	now := time.Now().UTC()
	group := models.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&group).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create group failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          group.ID,
		"title":       group.Title,
		"slug":        group.Slug,
		"description": group.Description,
		"created_at":  group.CreatedAt,
		"updated_at":  group.UpdatedAt,
	})
}

// List returns all groups with optional filters.
func (h *GroupHandler) List(c *gin.Context) {
	var (
		titleQ = strings.TrimSpace(c.Query("title"))
		idQ    = strings.TrimSpace(c.Query("id"))
	)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Group{})
	if titleQ != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+titleQ+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(h.db, "title"), pattern)
	}
	if idQ != "" {
		if id, errParse := strconv.ParseUint(idQ, 10, 64); errParse == nil {
			q = q.Where("id = ?", id)
		}
	}

	var rows []models.Group
	if errFind := q.Order("created_at DESC").Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list groups failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":          row.ID,
			"title":       row.Title,
			"slug":        row.Slug,
			"description": row.Description,
			"created_at":  row.CreatedAt,
			"updated_at":  row.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"groups": out})
}

// Get returns a group by ID.
func (h *GroupHandler) Get(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var group models.Group
	if errFind := h.db.WithContext(c.Request.Context()).First(&group, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          group.ID,
		"title":       group.Title,
		"slug":        group.Slug,
		"description": group.Description,
		"created_at":  group.CreatedAt,
		"updated_at":  group.UpdatedAt,
	})
}

// updateGroupRequest defines the request body for group updates.
type updateGroupRequest struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// Update modifies a group.
func (h *GroupHandler) Update(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateGroupRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if body.Title != nil {
		updates["title"] = strings.TrimSpace(*body.Title)
	}
	if body.Slug != nil {
		slug := strings.TrimSpace(*body.Slug)
		var existing models.Group
		errProbe := h.db.WithContext(c.Request.Context()).
			Where("slug = ? AND id != ?", slug, id).First(&existing).Error
		if errProbe == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "slug already taken"})
			return
		}
		if !errors.Is(errProbe, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		updates["slug"] = slug
	}
	if body.Description != nil {
		updates["description"] = strings.TrimSpace(*body.Description)
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Group{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes a group. Posts referencing it survive with the
// reference cleared, never deleted.
func (h *GroupHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	now := time.Now().UTC()
	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if errClear := tx.Model(&models.Post{}).Where("group_id = ?", id).
			Updates(map[string]any{"group_id": nil, "updated_at": now}).Error; errClear != nil {
			return errClear
		}
		res := tx.Delete(&models.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errTx != nil {
		if errors.Is(errTx, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
