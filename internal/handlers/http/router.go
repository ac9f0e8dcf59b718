package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/middleware"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/ws"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/i18n"
	"github.com/rafabene/avantpro-backoffice/internal/services"
)

// RouterDeps agrupa o que o roteador precisa
type RouterDeps struct {
	Env            string
	BaseURL        string
	AllowedOrigins string
	Logger         ports.Logger
	I18n           *i18n.Service

	AuthService       *services.AuthService
	UserService       *services.UserService
	PermissionService *services.PermissionService
	EventHub          *ws.EventHub
	HealthChecks      map[string]Pinger
}

// NewRouter monta o gin.Engine com middlewares e rotas da API
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.BaseURL(deps.BaseURL))
	router.Use(middleware.NewI18nMiddleware(deps.I18n).DetectLanguage())
	router.Use(middleware.CORS(deps.AllowedOrigins))

	auth := middleware.NewAuthMiddleware(deps.AuthService, deps.Logger)

	healthHandler := NewHealthHandler(deps.Env, deps.HealthChecks)
	authHandler := NewAuthHandler(deps.AuthService, deps.Logger)
	accessHandler := NewAccessHandler()
	permissionHandler := NewPermissionHandler(deps.PermissionService, deps.Logger)
	userHandler := NewUserHandler(deps.UserService, deps.Logger)

	router.GET("/health", healthHandler.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		protected := v1.Group("", auth.RequireAuth())
		{
			protected.GET("/me", accessHandler.Me)
			protected.POST("/access/check", accessHandler.Check)

			if deps.EventHub != nil {
				protected.GET("/events", deps.EventHub.Serve)
			}

			// Não existe constante para a categoria permissions; o catálogo fica com o admin
			permissions := protected.Group("/permissions", auth.RequireRole(entities.RoleAdmin))
			{
				permissions.GET("", permissionHandler.ListPermissions)
				permissions.GET("/groups", permissionHandler.ListGroups)
				permissions.GET("/groups/:entity", permissionHandler.GetGroup)
				permissions.POST("", permissionHandler.CreatePermission)
				permissions.PUT("/:id", permissionHandler.RenamePermission)
				permissions.DELETE("/:id", permissionHandler.DeletePermission)
			}

			users := protected.Group("/users")
			{
				users.POST("", auth.RequirePermission(entities.PermissionUserCreate), userHandler.CreateUser)
				users.GET("", auth.RequirePermission(entities.PermissionUserView), userHandler.ListUsers)
				users.GET("/:id", auth.RequirePermission(entities.PermissionUserView), userHandler.GetUser)
				users.POST("/:id/permissions", auth.RequirePermission(entities.PermissionUserEdit), userHandler.GrantPermission)
				users.DELETE("/:id/permissions", auth.RequirePermission(entities.PermissionUserEdit), userHandler.RevokePermission)
			}
		}
	}

	return router
}
