package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "messagely/internal/app"
	"messagely/internal/bootstrap"
	"messagely/internal/cache"
	"messagely/internal/platform/rabbitmq"
	"messagely/internal/repository"
	"messagely/internal/transport/http/handler"
	"messagely/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)

	userRepo := repository.NewUserRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)
	directoryCache := cache.NewDirectoryCache(
		app.Redis,
		time.Duration(app.Config.Redis.DirectoryTTLSeconds)*time.Second,
	)
	eventPublisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.MessageEventQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		directoryCache,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
		app.Config.Auth.BcryptCost,
	)
	userService := appsvc.NewUserService(userRepo, messageRepo, directoryCache)
	messageService := appsvc.NewMessageService(userRepo, messageRepo, eventPublisher)

	router := newRouter(app.Config.Auth.JWTSecret, authService, userService, messageService)

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	return router
}

// newRouter wires the API routes against already-constructed services, so
// tests can drive the full HTTP surface with in-memory stores.
func newRouter(
	jwtSecret string,
	authService *appsvc.AuthService,
	userService *appsvc.UserService,
	messageService *appsvc.MessageService,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	messageHandler := handler.NewMessageHandler(messageService)

	authGroup := router.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	userGroup := router.Group("/users")
	userGroup.Use(middleware.AuthJWT(jwtSecret))
	userGroup.GET("", userHandler.List)
	userGroup.GET("/:username", middleware.RequireSelf(), userHandler.Get)
	userGroup.GET("/:username/to", middleware.RequireSelf(), userHandler.MessagesTo)
	userGroup.GET("/:username/from", middleware.RequireSelf(), userHandler.MessagesFrom)

	messageGroup := router.Group("/messages")
	messageGroup.Use(middleware.AuthJWT(jwtSecret))
	messageGroup.POST("", messageHandler.Send)
	messageGroup.GET("/:id", messageHandler.Get)
	messageGroup.POST("/:id/read", messageHandler.MarkRead)

	return router
}
