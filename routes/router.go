package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shailyapp/shaily/config"
	"github.com/shailyapp/shaily/controllers"
	"github.com/shailyapp/shaily/middleware"
	"github.com/shailyapp/shaily/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Request log goes to its own rolling file, away from the app log.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record PV after each request
	r.Use(middleware.PageViewRecorder(db))

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	profileController := controllers.NewProfileController(db)
	gamificationController := controllers.NewGamificationController(db)
	routineController := controllers.NewRoutineController(db)
	shelfController := controllers.NewShelfController(db)
	blogController := controllers.NewBlogController(db)
	statsController := controllers.NewStatsController(db)
	assistantController := controllers.NewAssistantController(db,
		utils.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)

	// Public content
	api.GET("/blog", blogController.ListPosts)
	api.GET("/blog/:slug", blogController.GetPost)
	api.GET("/stats", statsController.GetStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	protected.GET("/users/:id", profileController.GetProfile)
	protected.PATCH("/users/:id", profileController.UpdateProfile)

	protected.GET("/gamification/:userId", gamificationController.GetStatus)
	protected.POST("/gamification/:userId", gamificationController.RecordDailyCompletion)
	protected.GET("/gamification/:userId/weekly", gamificationController.WeeklyReport)

	protected.GET("/routines/:userId", routineController.GetRoutine)
	protected.POST("/routines/:userId", routineController.SaveRoutine)
	protected.GET("/logs/:userId", routineController.GetDailyLog)
	protected.POST("/logs/:userId", routineController.SaveDailyLog)

	protected.GET("/shelf/:userId", shelfController.ListProducts)
	protected.POST("/shelf/:userId", shelfController.AddProduct)
	protected.DELETE("/shelf/:userId/:productId", shelfController.DeleteProduct)

	assistant := protected.Group("/assistant")
	assistant.Use(middleware.RateLimitMiddleware())
	assistant.POST("/chat", assistantController.Chat)
	assistant.GET("/feed/:userId", assistantController.DiscoveryFeed)
	assistant.GET("/potion/:userId", assistantController.PotionMixer)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "static asset not found"})
			return
		}
		// Remaining paths fall back to the SPA entry point.
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
