package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/model"
)

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "ok",
		Message: "finance tracker API is running",
	})
}
