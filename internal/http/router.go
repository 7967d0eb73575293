package httpapi

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/commsdesk/backend/internal/config"
	"github.com/commsdesk/backend/internal/http/handlers"
	"github.com/commsdesk/backend/internal/http/middleware"
	"github.com/commsdesk/backend/internal/http/views"
	"github.com/commsdesk/backend/internal/service"

	_ "github.com/commsdesk/backend/docs"
)

// Router wires the pages and the JSON API. db may be nil when the action
// ledger is kept in memory.
func Router(cfg config.Config, dash *service.Dashboard, db handlers.Pinger, logger zerolog.Logger) (*gin.Engine, error) {
	renderer, err := views.New(logger)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = splitOrigins(cfg.CORSAllowed)
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Dash:           dash,
		Views:          renderer,
		Validator:      validator.New(),
		Logger:         logger,
		DB:             db,
		MaxUploadBytes: cfg.MaxUploadSizeMB << 20,
	}

	r.GET("/healthz", h.Healthz)

	r.GET("/", h.ListPage)
	r.GET("/ticket/:ticket", h.TicketPage)
	r.POST("/ticket/:ticket/reply", h.ReplyPage)
	r.POST("/ticket/:ticket/payment", h.PaymentPage)
	r.POST("/ticket/:ticket/action", h.ActionPage)
	r.GET("/action", h.ActionLanding)
	r.POST("/action", h.ActionSubmit)
	r.GET("/images/:filename", h.Image)

	api := r.Group("/api")
	{
		api.GET("/communications", h.CommunicationsList)
		api.GET("/tickets/:ticket", h.TicketDetails)
		api.GET("/tickets/:ticket/comments", h.TicketComments)
		api.POST("/tickets/:ticket/comments", h.AddComment)
		api.POST("/tickets/:ticket/upload", h.UploadAttachment)
		api.GET("/tickets/:ticket/jewelry", h.JewelryImages)
		api.POST("/tickets/:ticket/compose", h.Compose)
		api.GET("/templates", h.TemplatesList)
		api.POST("/payments/:vendor", h.Pay)
		api.PUT("/customer-actions/process", h.ProcessAction)
		api.POST("/order-complete", h.OrderComplete)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
