package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HandleLiveness(c *gin.Context) {
	c.String(http.StatusOK, "Backend is live and ready!")
}
