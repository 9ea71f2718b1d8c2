package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

func sendError(c *gin.Context, status int, message string) {
	c.JSON(status, types.ErrorResponse{Error: message})
}

// sendFormFileError reports a missing form file. A body cut off by the
// request size limit is reported as too large instead.
func sendFormFileError(c *gin.Context, err error, missing string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		sendError(c, http.StatusBadRequest, utils.ErrFileTooLarge.Error())
		return
	}
	sendError(c, http.StatusBadRequest, missing)
}

// sendServiceError maps service errors onto status codes: validation
// problems are 400, unknown documents 404, everything else 500.
func sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingQuestion),
		errors.Is(err, service.ErrMissingContext),
		errors.Is(err, service.ErrAmbiguousSource):
		sendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, utils.ErrFileTooLarge):
		sendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDocumentNotFound):
		sendError(c, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		sendError(c, http.StatusInternalServerError, "Something went wrong: "+err.Error())
	}
}
