package httpt

import (
	"github.com/maafkarbai/FullStackProjectBackEnd/internal/service"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/logger"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/metric"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	svc       *service.StoreService
	log       logger.Logger
	metrics   metric.HTTP
	router    *gin.Engine
	staticDir string
}

func NewStoreHandler(
	svc *service.StoreService,
	log logger.Logger,
	metrics metric.HTTP,
	staticDir string,
) *StoreHandler {
	h := &StoreHandler{
		svc:       svc,
		log:       log,
		metrics:   metrics,
		staticDir: staticDir,
	}

	router := gin.New()

	router.Use(h.requestIDMiddleware())
	router.Use(h.loggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))
	router.Use(gin.Recovery())

	h.router = router

	h.setupRoutes()

	return h
}

func (h *StoreHandler) Engine() *gin.Engine {
	return h.router
}
