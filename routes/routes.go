package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Andryushik/MyDiary/auth"
	"github.com/Andryushik/MyDiary/config"
	"github.com/Andryushik/MyDiary/handlers"
	"github.com/Andryushik/MyDiary/middleware"
)

// SetupRouter wires the HTTP surface: CORS, rate limiting, the public auth
// endpoints and the token-protected API group.
func SetupRouter(cfg *config.Config, h *handlers.Handler, tokens *auth.TokenService) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	router.Use(middleware.RateLimit(limiter))

	// Public routes (no auth required)
	router.POST("/api/auth/signup", h.Signup)
	router.POST("/api/auth/login", h.Login)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.Auth(tokens))

	// Own profile
	protected.GET("/me", h.GetMe)
	protected.PUT("/me", h.UpdateProfile)
	protected.POST("/me/picture", h.UploadProfilePicture)

	// Other users
	protected.GET("/user/:id", h.GetUser)
	protected.PUT("/user/:id/follow", h.FollowUser)
	protected.PUT("/user/:id/unfollow", h.UnfollowUser)

	// Posts
	protected.POST("/post", h.CreatePost)
	protected.GET("/post/:id", h.GetPost)
	protected.PUT("/post/:id", h.UpdatePost)
	protected.DELETE("/post/:id", h.DeletePost)
	protected.PUT("/post/:id/like", h.LikePost)
	protected.PUT("/post/:id/report", h.ReportPost)
	protected.POST("/upload/post", h.UploadPostImage)

	// Listings
	protected.GET("/timeline/:id", h.GetTimeline)
	protected.GET("/feed/:id", h.GetFeed)
	protected.GET("/moderation/:id/reported", h.GetReportedPosts)
	protected.GET("/moderation/:id/banned", h.GetBannedPosts)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "msg": "Endpoint not found"})
	})

	return router
}
