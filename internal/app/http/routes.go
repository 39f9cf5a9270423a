package routes

import (
	adminapi "cms-backend/internal/api/admin"
	authapi "cms-backend/internal/api/auth"
	categoriesapi "cms-backend/internal/api/categories"
	commentsapi "cms-backend/internal/api/comments"
	mediaapi "cms-backend/internal/api/media"
	newsletterapi "cms-backend/internal/api/newsletter"
	pagesapi "cms-backend/internal/api/pages"
	postsapi "cms-backend/internal/api/posts"
	usersapi "cms-backend/internal/api/users"
	"cms-backend/internal/app/http/middleware"
	"cms-backend/internal/domain/access"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public read endpoints
	api.GET("/pages", pagesapi.List)
	api.GET("/pages/:id", pagesapi.Get)
	api.GET("/pages/slug/:slug", middleware.OptionalAuthMiddleware(), pagesapi.GetBySlug)
	api.GET("/posts", postsapi.List)
	api.GET("/posts/:id", postsapi.Get)
	api.GET("/categories", categoriesapi.List)
	api.GET("/categories/:id", categoriesapi.Get)
	api.GET("/comments/post/:postId", commentsapi.ListByPost)
	api.GET("/comments/:id", commentsapi.Get)
	api.GET("/users", usersapi.List)
	api.GET("/users/:id", usersapi.Get)

	// Public write endpoints take visitor input, sanitize them.
	public := api.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())
	public.POST("/auth/register", authapi.Register)
	public.POST("/auth/login", authapi.Login)
	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)
	public.POST("/newsletter/subscribe", newsletterapi.Subscribe)
	public.POST("/newsletter/unsubscribe", newsletterapi.Unsubscribe)

	// Authenticated
	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/auth/change-password", authapi.ChangePassword)
	auth.POST("/comments", middleware.SanitizeInputMiddleware(), commentsapi.Create)
	auth.PUT("/comments/:id", middleware.SanitizeInputMiddleware(), commentsapi.Update)
	auth.DELETE("/comments/:id", commentsapi.Delete)

	// Content management (author and above)
	author := api.Group("/")
	author.Use(middleware.AuthMiddleware(), middleware.RequireRole(access.CanManageContent))
	author.POST("/pages", pagesapi.Create)
	author.PUT("/pages/:id", pagesapi.Update)
	author.GET("/pages/:id/revisions", pagesapi.ListRevisions)
	author.POST("/pages/:id/revisions/:revisionId/restore", pagesapi.Restore)
	author.POST("/posts", postsapi.Create)
	author.PUT("/posts/:id", postsapi.Update)
	author.POST("/media/upload", mediaapi.Upload)
	author.GET("/media", mediaapi.List)
	author.GET("/media/:id", mediaapi.Get)
	author.PUT("/media/:id", mediaapi.Update)
	author.DELETE("/media/:id", mediaapi.SoftDelete)

	// Moderation (editor and above)
	editor := api.Group("/")
	editor.Use(middleware.AuthMiddleware(), middleware.RequireRole(access.CanModerate))
	editor.DELETE("/pages/:id", pagesapi.SoftDelete)
	editor.DELETE("/posts/:id", postsapi.Delete)
	editor.DELETE("/media/:id/permanent", mediaapi.HardDelete)
	editor.POST("/categories", categoriesapi.Create)
	editor.PUT("/categories/:id", categoriesapi.Update)
	editor.DELETE("/categories/:id", categoriesapi.Delete)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(access.CanAdminister))
	admin.DELETE("/pages/:id/permanent", pagesapi.HardDelete)
	admin.GET("/dashboard/stats", adminapi.GetStats)
	admin.GET("/dashboard/recent-activity", adminapi.GetRecentActivity)
	admin.GET("/activity", adminapi.ListActivity)
	admin.GET("/comments", commentsapi.AdminList)
	admin.POST("/comments/:id/approve", commentsapi.SetApproval(true))
	admin.POST("/comments/:id/reject", commentsapi.SetApproval(false))
	admin.POST("/users", usersapi.AdminCreate)
	admin.PUT("/users/:id/role", usersapi.AdminUpdateRole)
	admin.DELETE("/users/:id", usersapi.AdminDelete)
	admin.GET("/newsletter/subscribers", newsletterapi.AdminListSubscribers)
}
