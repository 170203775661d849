package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
	httpH "github.com/vsinha/partcounter/pkg/interfaces/http/handlers"
	httpMW "github.com/vsinha/partcounter/pkg/interfaces/http/middleware"
)

type RouterConfig struct {
	PartHandler    *httpH.PartHandler
	ComplexHandler *httpH.ComplexHandler
	CountHandler   *httpH.CountHandler
	EventHandler   *httpH.EventHandler
	HealthHandler  *httpH.HealthHandler

	Logger      *logger.Logger
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestID())
	r.Use(httpMW.RequestLogger(cfg.Logger))
	r.Use(httpMW.Metrics())
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Parts
		if cfg.PartHandler != nil {
			api.GET("/parts", cfg.PartHandler.ListParts)
			api.POST("/parts", cfg.PartHandler.CreatePart)
		}

		// Complexes
		if cfg.ComplexHandler != nil {
			api.GET("/complexes", cfg.ComplexHandler.ListComplexes)
			api.POST("/complexes", cfg.ComplexHandler.CreateComplex)
			api.GET("/complexes/:id", cfg.ComplexHandler.GetComplex)
			api.POST("/complexes/:id/parts", cfg.ComplexHandler.AssignPart)
		}

		// Aggregation
		if cfg.CountHandler != nil {
			api.POST("/count", cfg.CountHandler.Count)
		}

		// Catalog events
		if cfg.EventHandler != nil {
			api.GET("/events", cfg.EventHandler.ListEvents)
		}
	}

	return r
}
