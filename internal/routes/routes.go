package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lordbinary11/e-career-mobile/internal/config"
	"github.com/lordbinary11/e-career-mobile/internal/handlers"
	"github.com/lordbinary11/e-career-mobile/internal/middleware"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
	"github.com/lordbinary11/e-career-mobile/internal/services"
	chatws "github.com/lordbinary11/e-career-mobile/internal/websocket"
	"github.com/rs/zerolog"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, log zerolog.Logger) {
	userRepo := repository.NewUserRepository(db)
	counselorRepo := repository.NewCounselorRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	hub := chatws.NewHub(log)
	go hub.Run()

	profileService := services.NewProfileService(db, userRepo, counselorRepo)
	directoryService := services.NewDirectoryService(counselorRepo)
	meetingService := services.NewMeetingService(db, meetingRepo, userRepo, counselorRepo, hub)
	messagingService := services.NewMessagingService(messageRepo, counselorRepo, hub)
	aiChatService := services.NewAIChatService(cfg.AIChatURL, cfg.AIChatAPIKey, log)

	authHandler := handlers.NewAuthHandler(userRepo, counselorRepo, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)
	meetingHandler := handlers.NewMeetingHandler(meetingService)
	messageHandler := handlers.NewMessageHandler(messagingService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	aiChatHandler := handlers.NewAIChatHandler(aiChatService)
	wsHandler := handlers.NewWSHandler(hub, cfg.JWTSecret)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	api := app.Group("/api")

	auth := api.Group("/auth", limiter.Handler())
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	// Registered ahead of the /v1 group so websocket clients can
	// authenticate with a query token instead of a Bearer header.
	api.Use("/v1/ws", wsHandler.UpgradeRequired)
	api.Get("/v1/ws", websocket.New(wsHandler.HandleWebSocket))

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	users := authProtected.Group("/users")
	users.Get("/profile", profileHandler.GetUserProfile)
	users.Put("/profile", profileHandler.UpdateUserProfile)

	counselors := authProtected.Group("/counselors")
	counselors.Get("", directoryHandler.ListCounselors)
	counselors.Get("/profile", profileHandler.GetCounselorProfile)
	counselors.Put("/profile", profileHandler.UpdateCounselorProfile)
	counselors.Get("/:id", directoryHandler.GetCounselor)

	meetings := authProtected.Group("/meetings")
	meetings.Post("", meetingHandler.ScheduleMeeting)
	meetings.Get("", meetingHandler.ListMeetings)
	meetings.Post("/actions", meetingHandler.MeetingAction)

	messages := authProtected.Group("/messages")
	messages.Get("", messageHandler.ListMessages)
	messages.Post("", messageHandler.SendMessage)
	messages.Post("/reply", messageHandler.SendReply)

	notifications := authProtected.Group("/notifications")
	notifications.Get("", notificationHandler.ListNotifications)
	notifications.Put("/:id/read", notificationHandler.MarkNotificationRead)

	authProtected.Post("/ai/chat", aiChatHandler.Chat)
}
