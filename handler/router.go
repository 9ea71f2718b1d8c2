package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/docqa-be/middleware"
	"github.com/tieubaoca/docqa-be/service"
)

type RouterConfig struct {
	QAService        *service.QAService
	WebSocketService *service.WebSocketService
	MaxUploadBytes   int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	// two files per bulk request plus form overhead
	if cfg.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = 2*cfg.MaxUploadBytes + 1<<20
		router.Use(middleware.MaxBodySize(2*cfg.MaxUploadBytes + 1<<20))
	}

	corsHandler := NewCorsHandler()
	uploadHandler := NewUploadHandler(cfg.QAService, cfg.MaxUploadBytes)
	askHandler := NewAskHandler(cfg.QAService)
	bulkQAHandler := NewBulkQAHandler(cfg.QAService, cfg.MaxUploadBytes)

	router.Use(corsHandler.CorsMiddleware)

	router.GET("/", HandleLiveness)
	router.POST("/upload", uploadHandler.HandleUpload)
	router.POST("/ask", askHandler.HandleAsk)
	router.POST("/bulk-qa", bulkQAHandler.HandleBulkQA)
	router.POST("/bulk-qa/stream", bulkQAHandler.HandleBulkQAStream)

	if documents := cfg.QAService.Documents(); documents != nil {
		documentHandler := NewDocumentHandler(documents)
		router.DELETE("/documents/:id", documentHandler.HandleDelete)
	}
	if cfg.WebSocketService != nil {
		router.GET("/ws", gin.WrapF(cfg.WebSocketService.HandleAsk))
	}
	return router
}
