package handlers

import (
	"net/http"

	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// metricsHandler exposes the read-only aggregation endpoints.
type metricsHandler struct {
	metricsService ports.MetricsService
}

func newMetricsHandler(metricsService ports.MetricsService) *metricsHandler {
	return &metricsHandler{metricsService: metricsService}
}

// summary godoc
// @Summary Metrics summary
// @Description Aggregates income, outflow and net over a date range plus a time-bucketed series. Defaults to the current month.
// @Tags metrics
// @Produce json
// @Param branchId query string false "Branch filter"
// @Param accountId query string false "Account filter"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Param groupBy query string false "Bucket granularity: day, month, year or none"
// @Success 200 {object} dto.MetricsSummaryResponse
// @Router /metrics/summary [get]
// @Security BearerAuth
func (h *metricsHandler) summary(c *gin.Context) {
	var params dto.MetricsSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	res, err := h.metricsService.Summary(c.Request.Context(), actorFromContext(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// registerMetricsRoutes registers metrics specific routes.
func registerMetricsRoutes(group *gin.RouterGroup, metricsService ports.MetricsService) {
	handler := newMetricsHandler(metricsService)
	group.GET("/metrics/summary", handler.summary)
}
