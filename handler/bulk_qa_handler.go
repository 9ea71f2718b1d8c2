package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

type BulkQAHandler struct {
	qaService *service.QAService
	maxSize   int64
}

func NewBulkQAHandler(qaService *service.QAService, maxSize int64) *BulkQAHandler {
	return &BulkQAHandler{
		qaService: qaService,
		maxSize:   maxSize,
	}
}

// HandleBulkQA answers every question in "questionsPdf" against
// "contentPdf" and responds once all questions are done.
func (h *BulkQAHandler) HandleBulkQA(c *gin.Context) {
	content, questions, ok := h.readFiles(c)
	if !ok {
		return
	}

	resp, err := h.qaService.BulkQA(c.Request.Context(), content, questions, nil)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleBulkQAStream is HandleBulkQA as Server-Sent Events: one "answer"
// event per question followed by a "done" event with the full response.
func (h *BulkQAHandler) HandleBulkQAStream(c *gin.Context) {
	content, questions, ok := h.readFiles(c)
	if !ok {
		return
	}

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	resp, err := h.qaService.BulkQA(c.Request.Context(), content, questions, func(progress types.BulkQAProgress) {
		c.SSEvent("answer", progress)
		c.Writer.Flush()
	})
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.SSEvent("done", resp)
	c.Writer.Flush()
	log.Debug().Int("answers", len(resp.Answers)).Msg("Bulk QA stream finished")
}

func (h *BulkQAHandler) readFiles(c *gin.Context) ([]byte, []byte, bool) {
	contentHeader, err := c.FormFile("contentPdf")
	if err != nil {
		sendFormFileError(c, err, "contentPdf and questionsPdf are required")
		return nil, nil, false
	}
	questionsHeader, err := c.FormFile("questionsPdf")
	if err != nil {
		sendFormFileError(c, err, "contentPdf and questionsPdf are required")
		return nil, nil, false
	}

	content, err := h.read(c, contentHeader)
	if err != nil {
		return nil, nil, false
	}
	questions, err := h.read(c, questionsHeader)
	if err != nil {
		return nil, nil, false
	}
	return content, questions, true
}

func (h *BulkQAHandler) read(c *gin.Context, header *multipart.FileHeader) ([]byte, error) {
	data, err := utils.ReadUploadedFile(header, h.maxSize)
	if err != nil {
		sendServiceError(c, err)
		return nil, err
	}
	return data, nil
}
