package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

type AskHandler struct {
	qaService *service.QAService
}

func NewAskHandler(qaService *service.QAService) *AskHandler {
	return &AskHandler{
		qaService: qaService,
	}
}

func (h *AskHandler) HandleAsk(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.qaService.Ask(c.Request.Context(), req)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.AskResponse{Answer: answer})
}
