package router

import (
	"github.com/gin-gonic/gin"

	"pathwise.app/mentor/internal/http/handler"
)

func AgentRouter(group *gin.RouterGroup, h *handler.AgentHandler) {
	group.POST("", h.Generate)
}
