package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/vitrine-app/vitrine-api/docs"
	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/middleware"
	"github.com/vitrine-app/vitrine-api/internal/modules/handler"
	"github.com/vitrine-app/vitrine-api/internal/modules/serializer"
	"github.com/vitrine-app/vitrine-api/internal/modules/service"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	Auth           service.AuthService
	AuthHandler    *handler.AuthHandler
	ProjectHandler *handler.ProjectHandler
	CommentHandler *handler.CommentHandler
	UserHandler    *handler.UserHandler
	UploadHandler  *handler.UploadHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ZapLogger(d.Log))

	if len(d.Config.CORS.AllowOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = d.Config.CORS.AllowOrigins
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
		r.Use(cors.New(cfg))
	}

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", d.AuthHandler.Login)
			auth.POST("/register", d.AuthHandler.Register)
			auth.GET("/me", middleware.RequireAuth(d.Auth), d.AuthHandler.Me)
		}

		projects := api.Group("/projects")
		{
			// Reads resolve the session when one is present so hidden
			// projects stay visible to their author and admins.
			projects.GET("", middleware.OptionalAuth(d.Auth), d.ProjectHandler.List)
			projects.GET("/facets", d.ProjectHandler.Facets)
			projects.GET("/:id", middleware.OptionalAuth(d.Auth), d.ProjectHandler.Get)

			projects.POST("", middleware.RequireAuth(d.Auth), d.ProjectHandler.Create)
			projects.PUT("/:id", middleware.RequireAuth(d.Auth), d.ProjectHandler.Update)
			projects.DELETE("/:id", middleware.RequireAuth(d.Auth), d.ProjectHandler.Delete)
			projects.POST("/:id/like", middleware.RequireAuth(d.Auth), d.ProjectHandler.ToggleLike)
		}

		comments := api.Group("/comments")
		{
			comments.GET("", d.CommentHandler.List)
			comments.POST("", middleware.RequireAuth(d.Auth), d.CommentHandler.Create)
		}

		api.GET("/users", middleware.RequireAuth(d.Auth), middleware.RequireAdmin(), d.UserHandler.List)
		api.POST("/upload", middleware.RequireAuth(d.Auth), d.UploadHandler.Upload)
	}

	return r
}
