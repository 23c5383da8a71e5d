// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"chatmini-api/config"
	"chatmini-api/controllers"
	"chatmini-api/metrics"
	"chatmini-api/middleware"
	"chatmini-api/repositories"
	"chatmini-api/services"
	"chatmini-api/ws"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *ws.Hub) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	boardRepo := repositories.NewBoardRepository(db)

	// Services
	userService := services.NewUserService(userRepo)
	sessionService := services.NewSessionService(sessionRepo, userRepo, cfg.SessionTimeoutMinutes)
	friendService := services.NewFriendService(friendRepo, userRepo)
	chatService := services.NewChatService(chatRepo, userRepo, hub)
	boardService := services.NewBoardService(boardRepo, cfg.UploadDir)
	mediaService := services.NewMediaService(cfg.UploadDir)

	// Controllers
	userController := controllers.NewUserController(userService, sessionService)
	friendController := controllers.NewFriendController(friendService)
	chatController := controllers.NewChatController(chatService)
	boardController := controllers.NewBoardController(boardService)
	mediaController := controllers.NewMediaController(mediaService)

	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(metrics.GinMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RateLimit(300, 50))

	// User routes (public)
	users := api.Group("/users")
	{
		users.POST("/", userController.Create)
		users.POST("/signup", userController.SignUp)
		users.POST("/login", userController.Login)
		users.GET("/:id", userController.Get)
		users.PUT("/:id", userController.Update)
		users.DELETE("/:id", userController.Delete)
	}

	// Session-protected user routes
	authedUsers := api.Group("/users")
	authedUsers.Use(middleware.SessionAuth(sessionService))
	{
		authedUsers.POST("/logout", userController.Logout)
		authedUsers.GET("/me", userController.Me)
		authedUsers.PUT("/:id/nickname", userController.UpdateNickname)
	}

	// Friend routes
	friends := api.Group("/friends")
	friends.Use(middleware.SessionAuth(sessionService))
	{
		friends.GET("/", friendController.List)
		friends.GET("/search", friendController.Search)
		friends.POST("/requests", friendController.SendRequest)
		friends.GET("/requests/pending", friendController.Pending)
		friends.POST("/requests/:friendId/accept", friendController.Accept)
		friends.DELETE("/requests/:friendId", friendController.Reject)
		friends.DELETE("/:friendId", friendController.Remove)
	}

	// Chat routes
	chat := api.Group("/chat")
	chat.Use(middleware.SessionAuth(sessionService))
	{
		chat.POST("/room", chatController.CreateRoom)
		chat.GET("/rooms/user/:userId", chatController.RoomsForUser)
		chat.GET("/room/:roomId", chatController.Room)
		chat.GET("/room/:roomId/messages", chatController.Messages)
		chat.POST("/room/:roomId/leave", chatController.Leave)
		chat.POST("/room/:roomId/invite", chatController.Invite)
		chat.GET("/room/:roomId/participants/history", chatController.ParticipantHistory)
	}

	// Board routes
	boards := api.Group("/boards")
	{
		boards.POST("/", boardController.Create)
		boards.GET("/", boardController.List)
		boards.GET("/search/safe", boardController.SearchSafe)
		boards.GET("/search/vulnerable", boardController.SearchVulnerable)
		boards.GET("/search/truly-vulnerable", boardController.SearchTrulyVulnerable)
		boards.POST("/vulnerable-upload", boardController.VulnerableUpload)
		boards.POST("/secure-upload", boardController.SecureUpload)
		boards.GET("/download", boardController.Download)
		boards.GET("/download/secure", boardController.DownloadSecure)
	}

	// Media routes
	media := api.Group("/media")
	{
		media.POST("/upload-vulnerable", mediaController.UploadVulnerable)
		media.POST("/upload-secure", mediaController.UploadSecure)
	}

	// WebSocket endpoint, session-protected
	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.SessionAuth(sessionService))
	{
		wsGroup.GET("/chat", ws.Serve(hub, chatService))
	}
}
