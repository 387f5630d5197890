package main

import (
	"log"
	"strings"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/bootstrap"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/config"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/handler"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/middleware"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/repository"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/service"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/database"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/sms"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedSuperAdmin(db); err != nil {
			log.Fatalf("failed to seed superadmin: %v", err)
		}
	}

	// Optional collaborators degrade gracefully when not configured.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("WARNING: REDIS_URL not set, rate limiting disabled")
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliMasterKey != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	} else {
		log.Println("WARNING: MEILI_MASTER_KEY not set, user search falls back to the database")
	}

	var fileStorage storage.FileStorage
	if cfg.CloudinaryURL != "" {
		fileStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		log.Println("WARNING: CLOUDINARY_URL not set, submission uploads disabled")
	}

	smsGateway := sms.NewTwilioGateway(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)

	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	relRepo := repository.NewParentChildRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)

	notifier := service.NewNotifier()
	userSearch := service.NewUserSearchService(meiliClient, userRepo)

	adminService := service.NewAdminService(userRepo, adminRepo, auditRepo, relRepo, assignmentRepo, resetRepo, userSearch)
	resetService := service.NewPasswordResetService(resetRepo, userRepo, auditRepo, smsGateway)
	assignmentService := service.NewAssignmentService(assignmentRepo, gradeRepo, userRepo, notifier)
	gradeService := service.NewGradeService(gradeRepo, assignmentRepo, userRepo, notifier)
	dashboardService := service.NewDashboardService(userRepo, gradeRepo, assignmentRepo)

	authMiddleware := middleware.NewAuthMiddleware(adminRepo, cfg.JWTSecret)

	authHandler := handler.NewAuthHandler(adminService, authMiddleware)
	adminHandler := handler.NewAdminHandler(adminService)
	resetHandler := handler.NewPasswordResetHandler(resetService, redisClient)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, fileStorage)
	gradeHandler := handler.NewGradeHandler(gradeService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	eventsHandler := handler.NewEventsHandler(notifier)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	{
		api.POST("/admin/login", authHandler.Login)
		// Users file reset requests from the login screen, pre-auth.
		api.POST("/password-resets", resetHandler.CreateRequest)
	}

	authed := api.Group("")
	authed.Use(authMiddleware.RequireAdmin())
	{
		admin := authed.Group("/admin")
		{
			admin.POST("/logout", authHandler.Logout)

			admin.GET("/users", adminHandler.GetUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.GET("/users/recent", adminHandler.GetRecentUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.POST("/users/:id/reset-password", adminHandler.ResetUserPassword)
			admin.POST("/users/:id/activate", adminHandler.ActivateUser)
			admin.POST("/users/:id/deactivate", adminHandler.DeactivateUser)
			admin.POST("/users/bulk-delete", adminHandler.BulkDeleteUsers)
			admin.POST("/users/bulk-role", adminHandler.BulkUpdateUserRole)

			admin.GET("/relationships", adminHandler.GetRelationships)
			admin.POST("/relationships", adminHandler.CreateRelationship)
			admin.POST("/relationships/by-email", adminHandler.CreateRelationshipByEmail)
			admin.DELETE("/relationships/:parentId/:childId", adminHandler.RemoveRelationship)

			admin.GET("/admins", adminHandler.GetAdmins)
			admin.POST("/admins", adminHandler.CreateAdmin)

			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/stats/roles", adminHandler.GetUserStatsByRole)
			admin.GET("/stats/registrations", adminHandler.GetRegistrationStats)

			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
			admin.GET("/audit-logs/recent", adminHandler.GetRecentAdminActions)
			admin.GET("/audit-logs/admin/:id", adminHandler.GetAuditLogsByAdmin)

			admin.GET("/export/users", adminHandler.ExportUsers)

			admin.GET("/password-resets", resetHandler.GetRequests)
			admin.GET("/password-resets/pending-count", resetHandler.CountPending)
			admin.GET("/password-resets/:id", resetHandler.GetRequest)
			admin.POST("/password-resets/:id/process", resetHandler.ProcessRequest)
			admin.POST("/password-resets/:id/cancel", resetHandler.CancelRequest)
		}

		authed.GET("/assignments", assignmentHandler.List)
		authed.POST("/assignments", assignmentHandler.Create)
		authed.GET("/assignments/submissions", assignmentHandler.GetSubmissions)
		authed.GET("/assignments/:id", assignmentHandler.Get)
		authed.PUT("/assignments/:id", assignmentHandler.Update)
		authed.DELETE("/assignments/:id", assignmentHandler.Delete)
		authed.POST("/assignments/:id/submit", assignmentHandler.Submit)

		authed.POST("/grades", gradeHandler.Save)
		authed.GET("/grades/:id", gradeHandler.Get)
		authed.DELETE("/grades/:id", gradeHandler.Delete)
		authed.GET("/grades/student/:studentId", gradeHandler.GetByStudent)
		authed.GET("/grades/student/:studentId/stats", gradeHandler.GetStudentStats)
		authed.GET("/grades/assignment/:assignmentId", gradeHandler.GetByAssignment)

		authed.GET("/dashboards/parent/:parentId", dashboardHandler.GetParentDashboard)
		authed.GET("/dashboards/child/:childId/progress", dashboardHandler.GetMonthlyProgress)
		authed.POST("/dashboards/kid/:kidId/refresh", dashboardHandler.RefreshKidMetrics)

		authed.GET("/events", eventsHandler.HandleWebSocket)
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
