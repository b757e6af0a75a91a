package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"agriintel/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardController handles dashboard-related HTTP requests
type DashboardController struct {
	dashboardService service.DashboardService
	logger           *slog.Logger
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(dashboardService service.DashboardService, logger *slog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetSnapshot handles GET /v1/dashboard
func (c *DashboardController) GetSnapshot(ctx *gin.Context) {
	startTime := time.Now()
	snapshot := c.dashboardService.Snapshot()

	c.logger.Info("dashboard snapshot served",
		"ready", snapshot.Ready,
		"latency_ms", time.Since(startTime).Milliseconds(),
	)
	ctx.JSON(http.StatusOK, snapshot)
}

// GetPanel handles GET /v1/dashboard/{panel}
// Known panels: farm, ndvi, soil, weather, market, crop-health, viewport
func (c *DashboardController) GetPanel(ctx *gin.Context) {
	name := ctx.Param("panel")
	payload, ok := c.dashboardService.Panel(name)
	if !ok {
		c.logger.Warn("unknown panel requested", "panel", name)
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Unknown panel",
			"message": "panel must be one of farm, ndvi, soil, weather, market, crop-health, viewport",
		})
		return
	}
	ctx.JSON(http.StatusOK, payload)
}

// RegisterFarm handles POST /v1/farm
func (c *DashboardController) RegisterFarm(ctx *gin.Context) {
	startTime := time.Now()
	var input service.FarmInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		c.logger.Warn("invalid farm registration body", "error", err.Error())
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	farm, err := c.dashboardService.RegisterFarm(ctx.Request.Context(), input)
	switch {
	case errors.Is(err, service.ErrInvalidFarm):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid farm",
			"message": err.Error(),
		})
		return
	case errors.Is(err, service.ErrFarmExists):
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   "Farm already registered",
			"message": err.Error(),
		})
		return
	case err != nil:
		c.logger.Error("farm registration failed", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "failed to register farm",
		})
		return
	}

	c.logger.Info("farm registered",
		"farm_id", farm.ID,
		"name", farm.Name,
		"latency_ms", time.Since(startTime).Milliseconds(),
	)
	ctx.JSON(http.StatusCreated, farm)
}

// ExportNDVI handles GET /v1/export/ndvi.csv
func (c *DashboardController) ExportNDVI(ctx *gin.Context) {
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="ndvi.csv"`)
	if err := c.dashboardService.WriteNDVICSV(ctx.Writer); err != nil {
		c.logger.Error("ndvi export failed", "error", err.Error())
	}
}

// ExportSoil handles GET /v1/export/soil.csv
func (c *DashboardController) ExportSoil(ctx *gin.Context) {
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="soil.csv"`)
	if err := c.dashboardService.WriteSoilCSV(ctx.Writer); err != nil {
		c.logger.Error("soil export failed", "error", err.Error())
	}
}
