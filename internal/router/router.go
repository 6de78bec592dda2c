package router

import (
	"net/http"

	"github.com/Adrixx117/Investments/internal/config"
	"github.com/Adrixx117/Investments/internal/handler"
	"github.com/Adrixx117/Investments/internal/middleware"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin engine: page, static files and the JSON API.
// Templates and static files are skipped when their config entries are empty.
func SetupRouter(cfg *config.Config, investments handler.Investments, logger *log.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	if cfg.Server.Static != "" {
		r.Static("/static", cfg.Server.Static)
	}
	if cfg.Server.Templates != "" {
		r.LoadHTMLGlob(cfg.Server.Templates)
		r.GET("/", handler.Index)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ====== API ======
	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	investmentHandler := handler.NewInvestmentHandler(investments, logger)
	api.GET("/investments", investmentHandler.ListInvestments)
	api.POST("/investments/refresh", investmentHandler.RefreshInvestments)
	api.POST("/investments", investmentHandler.CreateInvestment)
	api.PUT("/investments/:id", investmentHandler.UpdateInvestment)
	api.PATCH("/investments/:id", investmentHandler.PatchInvestment)
	api.DELETE("/investments/:id", investmentHandler.DeleteInvestment)

	exportHandler := handler.NewExportHandler(investments)
	api.GET("/export/csv", exportHandler.ExportCSV)
	api.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
