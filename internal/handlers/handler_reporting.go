package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
)

// reportingHandler serves dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.GET("/monthly-summary", h.monthlySummary)
	}
}

// monthlySummary godoc
// @Summary Monthly summary
// @Description Returns income and expense totals with a per-category breakdown for one month.
// @Tags reports
// @Produce json
// @Param year query int true "Year" minimum(2000) maximum(2100)
// @Param month query int true "Month" minimum(1) maximum(12)
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly-summary [get]
func (h *reportingHandler) monthlySummary(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}

	var params dto.MonthlySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid query parameters", err.Error()))
		return
	}

	summary, err := h.reportingService.MonthlySummary(c.Request.Context(), principal, params.Year, params.Month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
