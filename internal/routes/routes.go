package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/config"
	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
	"github.com/BruksfildServices01/fieldservice-availability/internal/handlers"
	"github.com/BruksfildServices01/fieldservice-availability/internal/httpresp"
	"github.com/BruksfildServices01/fieldservice-availability/internal/middleware"
	"github.com/BruksfildServices01/fieldservice-availability/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/fieldservice-availability/internal/usecase/availability"
	"github.com/BruksfildServices01/fieldservice-availability/internal/web"
)

// Deps are the singletons the routes are built from. DB may be nil, in
// which case the audit log endpoint is not registered.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Gateway scheduling.Gateway
	Audit   audit.Recorder
	Logger  *zap.Logger
}

func RegisterRoutes(r *gin.Engine, deps Deps) error {
	cfg := deps.Config
	log := deps.Logger

	recorder := deps.Audit
	if recorder == nil {
		recorder = audit.Nop{}
	}

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.AccessLogMiddleware(log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailableDatesUC := ucAvailability.NewGetAvailableDates(
		deps.Gateway,
		ucAvailability.Defaults{
			WorkTypeID:  cfg.Salesforce.WorkTypeID,
			TerritoryID: cfg.Salesforce.TerritoryID,
		},
		timezone.Location(cfg.Timezone),
		recorder,
		log,
	)

	getServiceAppointmentUC := ucAvailability.NewGetServiceAppointment(
		deps.Gateway,
		recorder,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		getAvailableDatesUC,
		getServiceAppointmentUC,
	)
	webHandler := handlers.NewWebHandler(getAvailableDatesUC, log)

	r.GET("/health", func(c *gin.Context) {
		httpresp.OK(c, gin.H{"status": "ok"})
	})

	// ======================================================
	// WEB (HTML)
	// ======================================================
	r.GET("/fetching", webHandler.Fetching)
	r.GET("/sandbox", webHandler.Sandbox)
	r.POST("/sandbox", webHandler.SubmitSandbox)
	r.GET("/sandbox/:example", webHandler.SandboxExample)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, log))
	{
		api.GET("/availability", availabilityHandler.ListDates)
		api.GET("/service-appointments/:id", availabilityHandler.GetServiceAppointment)

		if deps.DB != nil && cfg.AdminJWTSecret != "" {
			auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

			admin := api.Group("/")
			admin.Use(middleware.AdminAuthMiddleware(cfg.AdminJWTSecret))
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
