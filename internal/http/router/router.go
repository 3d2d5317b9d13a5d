package router

import (
	"github.com/gin-gonic/gin"

	"pathwise.app/mentor/internal/http/handler"
)

func SetupRoutes(router *gin.Engine, pipeline handler.PlanRunner) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		agentHandler := handler.NewAgentHandler(pipeline)
		AgentRouter(v1.Group("/agent"), agentHandler)
	}
}
