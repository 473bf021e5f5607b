// Package stats 提供支出统计查询，供机器人回复与仪表盘接口共用。
// 时间窗口约定：今日为配置时区内的自然日，本周为最近 7×24 小时的滚动窗口，
// 本月为配置时区内的自然月。
package stats

import (
	"time"

	"gorm.io/gorm"

	"spendbot/models"
)

// Summary 一个时间窗口内的合计
type Summary struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// CategoryTotal 单个类别的合计
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// DayTotal 单日合计，Date 为 YYYY-MM-DD
type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// BudgetStatus 预算执行情况，Budget 为 0 表示未设预算
type BudgetStatus struct {
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Percent   float64 `json:"percent"`
}

// TodayRange 配置时区内今天的 [起, 止)
func TodayRange(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// WeekRange 最近 7 天的滚动窗口
func WeekRange(now time.Time) (time.Time, time.Time) {
	return now.Add(-7 * 24 * time.Hour), now
}

// MonthRange 配置时区内本月的 [起, 止)
func MonthRange(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// Totals 统计某用户在 [start, end) 内的支出合计与笔数
func Totals(db *gorm.DB, ownerID string, start, end time.Time) (Summary, error) {
	var s Summary
	err := db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("owner_id = ? AND expense_time >= ? AND expense_time < ?", ownerID, start, end).
		Scan(&s).Error
	return s, err
}

// Breakdown 按类别汇总，金额降序
func Breakdown(db *gorm.DB, ownerID string, start, end time.Time) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("owner_id = ? AND expense_time >= ? AND expense_time < ?", ownerID, start, end).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

// DailyTotals 最近 days 天的逐日合计，缺数据的日期补零
func DailyTotals(db *gorm.DB, ownerID string, days int, now time.Time, loc *time.Location) ([]DayTotal, error) {
	local := now.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)

	var rows []struct {
		Day   string
		Total float64
	}
	err := db.Model(&models.Expense{}).
		Select("DATE(expense_time) AS day, COALESCE(SUM(amount), 0) AS total").
		Where("owner_id = ? AND expense_time >= ? AND expense_time < ?", ownerID, start, end).
		Group("DATE(expense_time)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]float64, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r.Total
	}
	out := make([]DayTotal, 0, days)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		out = append(out, DayTotal{Date: key, Total: byDay[key]})
	}
	return out, nil
}

// Recent 最近的 limit 笔支出，按时间倒序
func Recent(db *gorm.DB, ownerID string, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	err := db.Where("owner_id = ?", ownerID).
		Order("expense_time DESC, id DESC").
		Limit(limit).
		Find(&expenses).Error
	return expenses, err
}

// Budget 计算预算执行情况；未设预算时 Percent 恒为 0
func Budget(user *models.User, monthSpent float64) BudgetStatus {
	status := BudgetStatus{
		Budget: user.MonthlyBudget,
		Spent:  monthSpent,
	}
	if user.MonthlyBudget > 0 {
		status.Remaining = user.MonthlyBudget - monthSpent
		status.Percent = monthSpent / user.MonthlyBudget * 100
	}
	return status
}
