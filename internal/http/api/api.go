// Package api wires the HTTP route surface: public feeds, the
// authenticated write endpoints, account auth, and the admin group
// lifecycle.
package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-dev/inkwell/internal/config"
	"github.com/inkwell-dev/inkwell/internal/http/api/admin"
	"github.com/inkwell-dev/inkwell/internal/http/api/handlers"
	"github.com/inkwell-dev/inkwell/internal/models"
	"github.com/inkwell-dev/inkwell/internal/security"
	"gorm.io/gorm"
)

// LoginPath is where unauthenticated requests to protected routes are
// sent, carrying the original path in the `next` parameter.
const LoginPath = "/auth/login/"

// RegisterRoutes registers all routes, middleware, and handlers.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, site config.SiteConfig) {
	if r == nil || db == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/healthz", healthHandler.Healthz)

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	r.POST("/auth/signup", authHandler.Signup)
	r.POST("/auth/login", authHandler.Login)
	r.GET(LoginPath, authHandler.LoginForm)

	postHandler := handlers.NewPostHandler(db, site)
	r.GET("/", postHandler.Index)
	r.GET("/group/:slug/", postHandler.GroupPosts)
	r.GET("/profile/:username/", postHandler.Profile)
	r.GET("/posts/:id/", postHandler.Detail)

	authed := r.Group("")
	authed.Use(loginRequiredMiddleware(db, jwtCfg))
	authed.GET("/create/", postHandler.CreateForm)
	authed.POST("/create/", postHandler.Create)
	authed.GET("/posts/:id/edit/", postHandler.EditForm)
	authed.POST("/posts/:id/edit/", postHandler.Edit)
	authed.POST("/posts/:id/image/", postHandler.UploadImage)

	adminGroup := r.Group("/v0/admin")
	adminGroup.Use(adminAuthMiddleware(db, jwtCfg))

	groupHandler := admin.NewGroupHandler(db)
	adminGroup.POST("/groups", groupHandler.Create)
	adminGroup.GET("/groups", groupHandler.List)
	adminGroup.GET("/groups/:id", groupHandler.Get)
	adminGroup.PUT("/groups/:id", groupHandler.Update)
	adminGroup.DELETE("/groups/:id", groupHandler.Delete)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return strings.TrimSpace(token)
}

// resolveUser loads the account referenced by a request's bearer token.
func resolveUser(c *gin.Context, db *gorm.DB, jwtCfg config.JWTConfig) (models.User, error) {
	token := bearerToken(c)
	if token == "" {
		return models.User{}, errors.New("missing token")
	}
	claims, errJWT := security.ParseUserToken(jwtCfg.Secret, token)
	if errJWT != nil {
		return models.User{}, errJWT
	}
	var user models.User
	if errFind := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; errFind != nil {
		return models.User{}, errFind
	}
	return user, nil
}

// loginRequiredMiddleware attaches the acting user, or redirects
// unauthenticated requests to the login path with a `next` parameter.
func loginRequiredMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, errResolve := resolveUser(c, db, jwtCfg)
		if errResolve != nil {
			next := url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, LoginPath+"?next="+next)
			c.Abort()
			return
		}
		handlers.SetActingUser(c, user)
		c.Next()
	}
}

// adminAuthMiddleware validates bearer tokens and requires admin rights.
func adminAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, errResolve := resolveUser(c, db, jwtCfg)
		if errResolve != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		handlers.SetActingUser(c, user)
		c.Next()
	}
}
