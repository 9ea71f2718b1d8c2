package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/utils"
)

type UploadHandler struct {
	qaService *service.QAService
	maxSize   int64
}

func NewUploadHandler(qaService *service.QAService, maxSize int64) *UploadHandler {
	return &UploadHandler{
		qaService: qaService,
		maxSize:   maxSize,
	}
}

// HandleUpload summarizes the PDF in the "file" field.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		sendFormFileError(c, err, "file is required")
		return
	}

	content, err := utils.ReadUploadedFile(header, h.maxSize)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	resp, err := h.qaService.Summarize(c.Request.Context(), header.Filename, content)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
