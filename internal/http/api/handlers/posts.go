package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-dev/inkwell/internal/config"
	"github.com/inkwell-dev/inkwell/internal/forms"
	"github.com/inkwell-dev/inkwell/internal/models"
	"github.com/inkwell-dev/inkwell/internal/pagination"
	"gorm.io/gorm"
)

// feedOrder is the system-wide post ordering, newest first.
const feedOrder = "pub_date DESC, id DESC"

// PostHandler serves the feed, detail, and write endpoints.
type PostHandler struct {
	db   *gorm.DB
	site config.SiteConfig
}

// NewPostHandler constructs a PostHandler.
func NewPostHandler(db *gorm.DB, site config.SiteConfig) *PostHandler {
	return &PostHandler{db: db, site: site}
}

// postJSON renders a post with its author and group references.
func (h *PostHandler) postJSON(post models.Post) gin.H {
	out := gin.H{
		"id":       post.ID,
		"text":     post.Text,
		"preview":  post.Preview(h.site.PreviewLength),
		"pub_date": post.PubDate,
		"image":    post.Image,
		"group":    nil,
	}
	if post.Author != nil {
		out["author"] = gin.H{
			"id":       post.Author.ID,
			"username": post.Author.Username,
			"name":     post.Author.Name,
		}
	}
	if post.Group != nil {
		out["group"] = gin.H{
			"id":    post.Group.ID,
			"title": post.Group.Title,
			"slug":  post.Group.Slug,
		}
	}
	return out
}

// groupJSON renders a group reference.
func groupJSON(group models.Group) gin.H {
	return gin.H{
		"id":          group.ID,
		"title":       group.Title,
		"slug":        group.Slug,
		"description": group.Description,
	}
}

// pageJSON renders one feed page with its paginator state.
func (h *PostHandler) pageJSON(window pagination.Window, posts []models.Post) gin.H {
	items := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		items = append(items, h.postJSON(post))
	}
	return gin.H{
		"number":       window.Number,
		"num_pages":    window.NumPages,
		"has_next":     window.HasNext(),
		"has_previous": window.HasPrevious(),
		"total":        window.Total,
		"posts":        items,
	}
}

// fetchPage counts and loads one ordered page of posts matching the
// already-filtered query.
func (h *PostHandler) fetchPage(c *gin.Context, q *gorm.DB) (pagination.Window, []models.Post, bool) {
	var total int64
	if errCount := q.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count posts failed"})
		return pagination.Window{}, nil, false
	}

	params := pagination.FromQuery(c.Query("page"), h.site.PostsOnPage)
	window := pagination.Paginate(total, params)

	var posts []models.Post
	if errFind := q.
		Preload("Author").
		Preload("Group").
		Order(feedOrder).
		Offset(window.Offset).
		Limit(window.Limit).
		Find(&posts).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list posts failed"})
		return pagination.Window{}, nil, false
	}
	return window, posts, true
}

// Index returns the paginated global feed.
func (h *PostHandler) Index(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Post{})
	window, posts, ok := h.fetchPage(c, q)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"page_obj": h.pageJSON(window, posts)})
}

// GroupPosts returns the paginated feed of one group, looked up by slug.
func (h *PostHandler) GroupPosts(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	var group models.Group
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", slug).First(&group).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query group failed"})
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.Post{}).
		Where("group_id = ?", group.ID)
	window, posts, ok := h.fetchPage(c, q)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"group":    groupJSON(group),
		"page_obj": h.pageJSON(window, posts),
	})
}

// Profile returns the paginated feed of one author, looked up by username.
func (h *PostHandler) Profile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))

	var author models.User
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("username = ?", username).First(&author).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query author failed"})
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.Post{}).
		Where("author_id = ?", author.ID)
	window, posts, ok := h.fetchPage(c, q)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"author": gin.H{
			"id":       author.ID,
			"username": author.Username,
			"name":     author.Name,
		},
		"page_obj": h.pageJSON(window, posts),
	})
}

// Detail returns a single post by ID.
func (h *PostHandler) Detail(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var post models.Post
	if errFind := h.db.WithContext(c.Request.Context()).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query post failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": h.postJSON(post)})
}

// formJSON renders the create/edit form context.
func formJSON(form forms.PostForm, fieldErrors forms.FieldErrors) gin.H {
	out := gin.H{
		"text":  form.Text,
		"group": form.GroupID,
	}
	if fieldErrors.HasErrors() {
		out["errors"] = fieldErrors
	}
	return out
}

// CreateForm returns the empty post form scaffold.
func (h *PostHandler) CreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": formJSON(forms.PostForm{}, nil)})
}

// Create validates a post submission and persists it for the acting user.
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := ActingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var form forms.PostForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	draft, fieldErrors, errValidate := form.Validate(c.Request.Context(), h.db)
	if errValidate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validate failed"})
		return
	}
	if fieldErrors.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"form": formJSON(form, fieldErrors)})
		return
	}

	draft.AuthorID = user.ID
	draft.PubDate = time.Now().UTC()
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&draft).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create post failed"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+url.PathEscape(user.Username)+"/")
}

// loadPostForEdit fetches the post and enforces author-only access. A
// non-author is silently redirected to the post detail page.
func (h *PostHandler) loadPostForEdit(c *gin.Context) (models.Post, bool) {
	idRaw := strings.TrimSpace(c.Param("id"))
	id, errParse := strconv.ParseUint(idRaw, 10, 64)
	if errParse != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return models.Post{}, false
	}

	var post models.Post
	if errFind := h.db.WithContext(c.Request.Context()).First(&post, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return models.Post{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query post failed"})
		return models.Post{}, false
	}

	user, ok := ActingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return models.Post{}, false
	}
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, "/posts/"+idRaw+"/")
		c.Abort()
		return models.Post{}, false
	}
	return post, true
}

// EditForm returns the form prefilled with the post under edit.
func (h *PostHandler) EditForm(c *gin.Context) {
	post, ok := h.loadPostForEdit(c)
	if !ok {
		return
	}
	form := forms.PostForm{Text: post.Text, GroupID: post.GroupID}
	c.JSON(http.StatusOK, gin.H{
		"form":    formJSON(form, nil),
		"post_id": post.ID,
	})
}

// Edit validates an edit submission and updates text and group only.
// Author and publication time are immutable.
func (h *PostHandler) Edit(c *gin.Context) {
	post, ok := h.loadPostForEdit(c)
	if !ok {
		return
	}

	var form forms.PostForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	draft, fieldErrors, errValidate := form.Validate(c.Request.Context(), h.db)
	if errValidate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validate failed"})
		return
	}
	if fieldErrors.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"form": formJSON(form, fieldErrors)})
		return
	}

	updates := map[string]any{
		"text":       draft.Text,
		"group_id":   draft.GroupID,
		"updated_at": time.Now().UTC(),
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update post failed"})
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(post.ID, 10)+"/")
}
