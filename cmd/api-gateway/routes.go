package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/bizops-api/internal/handler"
	"github.com/noah-isme/bizops-api/internal/middleware"
	"github.com/noah-isme/bizops-api/internal/models"
)

type routeHandlers struct {
	metrics *handler.MetricsHandler
	listing *handler.ListingHandler
	archive *handler.ArchiveHandler
	proof   *handler.ProofHandler
	export  *handler.ExportHandler
}

func registerRoutes(r *gin.Engine, prefix string, docs bool, auth middleware.TokenValidator, h routeHandlers) {
	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)
	if docs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	operators := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)

	api := r.Group(prefix, middleware.JWT(auth), middleware.WithResponseMeta())
	api.GET("/submissions", h.listing.Submissions)
	api.GET("/orders", h.listing.Orders)
	api.GET("/orders/:id/history", h.proof.OrderHistory)
	api.GET("/proofs", h.listing.Proofs)
	api.GET("/proofs/latest", h.proof.Latest)
	api.GET("/proofs/overview", h.proof.Overview)

	api.POST("/archives/:kind/:id", operators, h.archive.Archive)
	api.DELETE("/archives/:kind/:id", operators, h.archive.Unarchive)
	api.GET("/exports/:table", operators, h.export.Export)
	api.GET("/metrics/summary", middleware.RequireRoles(models.RoleAdmin), h.metrics.Summary)
}
