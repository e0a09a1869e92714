package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prompthash.backend/internal/interfaces/http/handlers"
	"prompthash.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	userHandler     *handlers.UserHandler
	promptHandler   *handlers.PromptHandler
	workflowHandler *handlers.WorkflowHandler
	assistHandler   *handlers.AssistHandler
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Legacy marketplace API surface
	api := r.Group("/api")
	{
		api.POST("/prompts", d.promptHandler.Create)
		api.GET("/prompts", d.promptHandler.List)
		api.POST("/user", d.userHandler.Register)

		api.GET("/chat", d.assistHandler.Chat)
		api.POST("/chat", d.assistHandler.Chat)
		api.GET("/improve-prompt", d.assistHandler.ImprovePrompt)
		api.POST("/improve-prompt", d.assistHandler.ImprovePrompt)
	}

	v1 := r.Group("/api/v1")
	{
		prompts := v1.Group("/prompts")
		{
			prompts.POST("", d.promptHandler.Create)
			prompts.GET("", d.promptHandler.List)
		}

		users := v1.Group("/users")
		{
			users.POST("", d.userHandler.Register)
			users.GET("/:walletAddress", d.userHandler.GetByWallet)
		}

		// Workflow routes put transactions on-chain, so retries are
		// guarded by the idempotency middleware.
		workflows := v1.Group("/workflows")
		{
			workflows.POST("/submissions", middleware.IdempotencyMiddleware(), d.workflowHandler.Submit)
			workflows.POST("/purchases", middleware.IdempotencyMiddleware(), d.workflowHandler.Purchase)
			workflows.POST("/listings", middleware.IdempotencyMiddleware(), d.workflowHandler.Listing)
			workflows.GET("/purchases/button-state", d.workflowHandler.ButtonState)
		}

		assist := v1.Group("/assist")
		{
			assist.GET("/chat", d.assistHandler.Chat)
			assist.POST("/chat", d.assistHandler.Chat)
			assist.GET("/improve-prompt", d.assistHandler.ImprovePrompt)
			assist.POST("/improve-prompt", d.assistHandler.ImprovePrompt)
			assist.GET("/generate-image", d.assistHandler.GenerateImage)
			assist.POST("/generate-image", d.assistHandler.GenerateImage)
			assist.GET("/models", d.assistHandler.Models)
			assist.GET("/health", d.assistHandler.Health)
		}
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
