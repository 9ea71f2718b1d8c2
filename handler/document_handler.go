package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/docqa-be/service"
)

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
	}
}

// HandleDelete drops a stored document before its expiry.
func (h *DocumentHandler) HandleDelete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		sendServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
