package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"spendbot/database"
	"spendbot/lexicon"
	"spendbot/middleware"
	"spendbot/models"
)

// ExpenseHandler 支出记录处理器
type ExpenseHandler struct{}

// NewExpenseHandler 创建支出记录处理器
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// CreateExpenseRequest 创建支出请求
type CreateExpenseRequest struct {
	Description string  `json:"description" binding:"required" example:"lunch"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"12.50"`
	Category    string  `json:"category" example:"food"`
	ExpenseTime string  `json:"expense_time" example:"2025-01-15 12:30:00"`
}

// UpdateExpenseRequest 更新支出请求
type UpdateExpenseRequest struct {
	Description string  `json:"description" example:"lunch"`
	Amount      float64 `json:"amount" binding:"omitempty,gt=0" example:"12.50"`
	Category    string  `json:"category" example:"food"`
}

// resolveCategory 类别为空时按描述自动分类，否则按别名宽松匹配
func resolveCategory(category, description string) string {
	category = strings.TrimSpace(strings.ToLower(category))
	if category == "" {
		return lexicon.Categorize(description)
	}
	return models.ValidateCategory(category)
}

// Create 创建支出记录
// @Summary 创建支出记录
// @Description 类别留空时按描述自动分类
// @Tags 支出
// @Accept json
// @Produce json
// @Param token query string true "访问令牌"
// @Param request body CreateExpenseRequest true "支出信息"
// @Success 200 {object} models.Expense
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	ownerID := middleware.GetCurrentOwnerID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request"))
		return
	}

	expenseTime := time.Now()
	if req.ExpenseTime != "" {
		parsed, err := time.ParseInLocation("2006-01-02 15:04:05", req.ExpenseTime, time.Local)
		if err != nil {
			BadRequest(c, "Invalid expense_time, expected format: 2006-01-02 15:04:05")
			return
		}
		expenseTime = parsed
	}

	expense := models.Expense{
		OwnerID:     ownerID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    resolveCategory(req.Category, req.Description),
		ExpenseTime: expenseTime,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to create expense"))
		return
	}

	c.JSON(200, expense)
}

// Update 更新支出记录
// @Summary 更新支出记录
// @Description 只能更新令牌归属用户自己的记录
// @Tags 支出
// @Accept json
// @Produce json
// @Param token query string true "访问令牌"
// @Param id path int true "支出 ID"
// @Param request body UpdateExpenseRequest true "更新内容"
// @Success 200 {object} models.Expense
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	ownerID := middleware.GetCurrentOwnerID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "Invalid expense id")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request"))
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&expense).Error; err != nil {
		NotFound(c, "Expense not found")
		return
	}

	if req.Description != "" {
		expense.Description = req.Description
	}
	if req.Amount > 0 {
		expense.Amount = req.Amount
	}
	if req.Category != "" {
		expense.Category = models.ValidateCategory(strings.ToLower(req.Category))
	}

	if err := database.DB.Save(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to update expense"))
		return
	}

	c.JSON(200, expense)
}

// Delete 删除支出记录
// @Summary 删除支出记录
// @Description 只能删除令牌归属用户自己的记录
// @Tags 支出
// @Produce json
// @Param token query string true "访问令牌"
// @Param id path int true "支出 ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetCurrentOwnerID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "Invalid expense id")
		return
	}

	result := database.DB.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Expense{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "Failed to delete expense"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "Expense not found")
		return
	}

	c.JSON(200, gin.H{"deleted": true})
}
