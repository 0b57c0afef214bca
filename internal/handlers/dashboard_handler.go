package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fincoach/internal/errors"
	"fincoach/internal/services"
)

// DashboardHandler serves aggregated reports over the user's transactions.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardStatsQuery holds the query parameters for the dashboard stats endpoint.
type DashboardStatsQuery struct {
	Days int `form:"days,default=30" binding:"min=1,max=365"`
}

// GetDashboardStats handles the windowed dashboard report
// @Summary     Get dashboard statistics
// @Description Get aggregated statistics over the last N days: totals, averages, top spending categories, budget usage and recent transactions
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Window size in days (1-365, default 30)"
// @Success     200 {object} services.DashboardStats "Dashboard statistics"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/stats [get]
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query DashboardStatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be between 1 and 365"))
		return
	}

	stats, err := h.dashboardService.GetDashboardStats(userID, query.Days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetQuickStats handles the lightweight all-time overview
// @Summary     Get quick statistics
// @Description Get all-time income, expense and net balance, plus budget usage for the current calendar month
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.QuickStats "Quick statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/quick-stats [get]
func (h *DashboardHandler) GetQuickStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.dashboardService.GetQuickStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// SpendingByCategoryQuery holds the query parameters for the spending breakdown endpoint.
type SpendingByCategoryQuery struct {
	Days  int `form:"days,default=30" binding:"min=1,max=365"`
	Limit int `form:"limit,default=10" binding:"min=1,max=50"`
}

// GetSpendingByCategory handles the expense-by-category breakdown
// @Summary     Get spending by category
// @Description Get expense totals grouped by category over the last N days, ordered by amount spent
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       days  query int false "Window size in days (1-365, default 30)"
// @Param       limit query int false "Maximum number of categories (1-50, default 10)"
// @Success     200 {object} map[string][]services.CategorySpending "Spending breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/spending-by-category [get]
func (h *DashboardHandler) GetSpendingByCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query SpendingByCategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be 1-365 and limit must be 1-50"))
		return
	}

	breakdown, err := h.dashboardService.GetSpendingByCategory(userID, query.Days, query.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"spending_by_category": breakdown})
}
