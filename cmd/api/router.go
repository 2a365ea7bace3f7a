package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/shared/middleware"
	"bookshelf-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "see API documentation for more information!"})
	})
	router.GET("/health", healthCheckHandler(c))

	setupAuthRoutes(router, c)
	setupBookRoutes(router, c)

	return router
}

func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	auth := router.Group("/auth")
	{
		auth.GET("/", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"message": "This is auth endpoint, go to /login or /register"})
		})
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
	}
}

func setupBookRoutes(router *gin.Engine, c *container.Container) {
	books := router.Group("/books")
	books.Use(middleware.Authenticated(c.Codec))
	{
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.GetByID)
		books.POST("", c.BookHandler.Create)
		books.PUT("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Delete)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "cache": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["cache"] = err.Error()
		}

		ctx.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
	}
}
