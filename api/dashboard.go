package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"spendbot/config"
	"spendbot/database"
	"spendbot/middleware"
	"spendbot/models"
	"spendbot/stats"
)

// DashboardHandler 仪表盘聚合数据处理器
type DashboardHandler struct{}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// DashboardResponse 仪表盘聚合数据
type DashboardResponse struct {
	Name      string                `json:"name"`
	Currency  string                `json:"currency"`
	Today     stats.Summary         `json:"today"`
	Week      stats.Summary         `json:"week"`
	Month     stats.Summary         `json:"month"`
	Recent    []models.Expense      `json:"recent"`
	Budget    stats.BudgetStatus    `json:"budget"`
	Breakdown []stats.CategoryTotal `json:"breakdown"`
	Daily     []stats.DayTotal      `json:"daily"`
}

// Get 获取仪表盘聚合数据
// @Summary 仪表盘聚合数据
// @Description 一次性返回今日/本周/本月合计、近期支出、预算状态、类别与逐日分布
// @Tags 仪表盘
// @Produce json
// @Param token query string true "访问令牌"
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	ownerID := middleware.GetCurrentOwnerID(c)

	var user models.User
	if err := database.DB.Where("owner_id = ?", ownerID).First(&user).Error; err != nil {
		NotFound(c, "User not found")
		return
	}

	now := time.Now()
	loc := config.GetConfig().Server.Location()
	db := database.DB

	todayStart, todayEnd := stats.TodayRange(now, loc)
	today, err := stats.Totals(db, ownerID, todayStart, todayEnd)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load dashboard"))
		return
	}

	weekStart, weekEnd := stats.WeekRange(now)
	week, err := stats.Totals(db, ownerID, weekStart, weekEnd)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load dashboard"))
		return
	}

	monthStart, monthEnd := stats.MonthRange(now, loc)
	month, err := stats.Totals(db, ownerID, monthStart, monthEnd)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load dashboard"))
		return
	}

	recent, err := stats.Recent(db, ownerID, 20)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load dashboard"))
		return
	}

	breakdown, err := stats.Breakdown(db, ownerID, monthStart, monthEnd)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load dashboard"))
		return
	}

	daily, err := stats.DailyTotals(db, ownerID, 7, now, loc)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load dashboard"))
		return
	}

	c.JSON(200, DashboardResponse{
		Name:      user.DisplayName,
		Currency:  user.Currency(),
		Today:     today,
		Week:      week,
		Month:     month,
		Recent:    recent,
		Budget:    stats.Budget(&user, month.Total),
		Breakdown: breakdown,
		Daily:     daily,
	})
}
