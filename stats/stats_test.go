package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendbot/models"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestTodayRange(t *testing.T) {
	loc := mustLoc(t, "Asia/Singapore")
	// UTC 2025-03-01 18:30 已是新加坡 3 月 2 日凌晨
	now := time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC)

	start, end := TodayRange(now, loc)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, loc), end)
}

func TestWeekRange(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	start, end := WeekRange(now)
	assert.Equal(t, now, end)
	assert.Equal(t, now.AddDate(0, 0, -7), start)
}

func TestMonthRange(t *testing.T) {
	loc := mustLoc(t, "Asia/Singapore")
	now := time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC) // 新加坡已是 2 月 1 日

	start, end := MonthRange(now, loc)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, loc), end)
}

func TestBudget(t *testing.T) {
	user := &models.User{MonthlyBudget: 500}
	status := Budget(user, 400)
	assert.Equal(t, float64(500), status.Budget)
	assert.Equal(t, float64(400), status.Spent)
	assert.Equal(t, float64(100), status.Remaining)
	assert.Equal(t, float64(80), status.Percent)
}

// 未设预算时百分比恒为 0，不做除零
func TestBudget_ZeroBudget(t *testing.T) {
	user := &models.User{MonthlyBudget: 0}
	status := Budget(user, 123.45)
	assert.Equal(t, float64(0), status.Budget)
	assert.Equal(t, float64(0), status.Percent)
	assert.Equal(t, float64(0), status.Remaining)
	assert.Equal(t, 123.45, status.Spent)
}

func TestBudget_Overspent(t *testing.T) {
	user := &models.User{MonthlyBudget: 100}
	status := Budget(user, 150)
	assert.Equal(t, float64(-50), status.Remaining)
	assert.Equal(t, float64(150), status.Percent)
}
