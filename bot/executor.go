// Package bot 实现聊天命令的执行：解析消息、读写存储、生成回复文本。
// 回复为空串表示保持沉默（闲聊等无法识别的消息不打扰用户）。
package bot

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	"spendbot/config"
	"spendbot/lexicon"
	"spendbot/models"
	"spendbot/parser"
	"spendbot/service"
	"spendbot/stats"
	"spendbot/tokens"
)

// errorReply 存储出错时的统一回复
const errorReply = "❌ Sorry, something went wrong. Please try again."

// Executor 命令执行器，机器人各接入端共用一个实例
type Executor struct {
	db    *gorm.DB
	cfg   *config.Config
	store tokens.Store
	mail  *service.EmailService // 可为 nil
}

func NewExecutor(db *gorm.DB, cfg *config.Config, store tokens.Store, mail *service.EmailService) *Executor {
	return &Executor{db: db, cfg: cfg, store: store, mail: mail}
}

// HandleMessage 处理一条入站消息并返回回复文本。
// 先解析后建档：无法识别的消息不产生任何数据库读写。
func (e *Executor) HandleMessage(ownerID, displayName, text string) string {
	cmd := parser.Parse(text)
	if cmd.Kind == parser.KindUnknown {
		return ""
	}

	user, err := e.ensureUser(ownerID, displayName)
	if err != nil {
		log.Printf("加载用户失败 owner=%s: %v", ownerID, err)
		return errorReply
	}

	reply, err := e.dispatch(user, cmd)
	if err != nil {
		log.Printf("执行命令失败 owner=%s kind=%s: %v", ownerID, cmd.Kind, err)
		return errorReply
	}
	return reply
}

func (e *Executor) dispatch(user *models.User, cmd parser.Command) (string, error) {
	switch cmd.Kind {
	case parser.KindAddExpense:
		return e.addExpense(user, cmd)
	case parser.KindToday:
		return e.todaySummary(user)
	case parser.KindWeek:
		return e.weekSummary(user)
	case parser.KindMonth:
		return e.monthSummary(user)
	case parser.KindRecent:
		return e.recentExpenses(user)
	case parser.KindBreakdown:
		return e.categoryBreakdown(user)
	case parser.KindDeleteLast:
		return e.deleteLast(user)
	case parser.KindDashboard:
		return e.dashboardLink(user)
	case parser.KindSetPin:
		return e.setPin(user, cmd.PIN)
	case parser.KindResetPin:
		return e.resetPin(user)
	case parser.KindSetBudget:
		return e.setBudget(user, cmd.Amount)
	case parser.KindBudgetStatus:
		return e.budgetStatus(user)
	case parser.KindAddRecurring:
		return e.addRecurring(user, cmd)
	case parser.KindListRecurring:
		return e.listRecurring(user)
	case parser.KindStopRecurring:
		return e.stopRecurring(user, cmd.ID)
	case parser.KindEdit:
		return e.editExpense(user, cmd)
	case parser.KindExport:
		return e.exportMonth(user)
	case parser.KindSetCurrency:
		return e.setCurrency(user, cmd.Currency)
	case parser.KindHelp:
		return helpText, nil
	}
	return "", nil
}

// ensureUser 首次交互时建档，之后直接读取
func (e *Executor) ensureUser(ownerID, displayName string) (*models.User, error) {
	var user models.User
	err := e.db.Where("owner_id = ?", ownerID).
		Attrs(models.User{OwnerID: ownerID, DisplayName: displayName, CurrencySymbol: "$"}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (e *Executor) addExpense(user *models.User, cmd parser.Command) (string, error) {
	category := cmd.Category
	if category == "" {
		category = lexicon.Categorize(cmd.Description)
	} else {
		category = models.ValidateCategory(category)
	}

	now := time.Now()
	expense := models.Expense{
		OwnerID:     user.OwnerID,
		Description: cmd.Description,
		Amount:      cmd.Amount,
		Category:    category,
		ExpenseTime: now,
	}
	if err := e.db.Create(&expense).Error; err != nil {
		return "", err
	}

	loc := e.cfg.Server.Location()
	start, end := stats.TodayRange(now, loc)
	today, err := stats.Totals(e.db, user.OwnerID, start, end)
	if err != nil {
		return "", err
	}

	cur := user.Currency()
	reply := fmt.Sprintf("✅ %s - %s%.2f\n%s %s\n🕐 %s\n\n📊 Today: %s%.2f",
		cmd.Description, cur, cmd.Amount,
		models.CategoryEmoji(category), category,
		now.In(loc).Format("3:04 PM, 2 Jan"),
		cur, today.Total)

	if alert, err := e.budgetAlert(user, now); err == nil && alert != "" {
		reply += alert
	}
	return reply, nil
}

// budgetAlert 记账后检查预算水位，80% 预警、100% 告警；
// 邮件通知每个自然月最多发一次
func (e *Executor) budgetAlert(user *models.User, now time.Time) (string, error) {
	if user.MonthlyBudget <= 0 {
		return "", nil
	}
	loc := e.cfg.Server.Location()
	start, end := stats.MonthRange(now, loc)
	month, err := stats.Totals(e.db, user.OwnerID, start, end)
	if err != nil {
		return "", err
	}
	status := stats.Budget(user, month.Total)
	cur := user.Currency()

	var alert string
	switch {
	case status.Percent >= 100:
		alert = fmt.Sprintf("\n\n🚨 *BUDGET EXCEEDED!* You've spent %s%.2f of %s%.2f",
			cur, status.Spent, cur, status.Budget)
	case status.Percent >= 80:
		alert = fmt.Sprintf("\n\n⚠️ *Budget Alert:* %.0f%% used (%s%.2f left)",
			status.Percent, cur, status.Remaining)
	default:
		return "", nil
	}

	e.maybeSendAlertEmail(user, status, start)
	return alert, nil
}

func (e *Executor) maybeSendAlertEmail(user *models.User, status stats.BudgetStatus, monthStart time.Time) {
	if e.mail == nil || !e.mail.Enabled() {
		return
	}
	if user.BudgetAlertedAt != nil && !user.BudgetAlertedAt.Before(monthStart) {
		return
	}
	if err := e.mail.SendBudgetAlert(user.DisplayName, user.Currency(), status.Spent, status.Budget, status.Percent); err != nil {
		log.Printf("发送预算告警邮件失败 owner=%s: %v", user.OwnerID, err)
		return
	}
	now := time.Now()
	if err := e.db.Model(user).Update("budget_alerted_at", now).Error; err != nil {
		log.Printf("更新告警时间失败 owner=%s: %v", user.OwnerID, err)
	}
}

func (e *Executor) todaySummary(user *models.User) (string, error) {
	start, end := stats.TodayRange(time.Now(), e.cfg.Server.Location())
	s, err := stats.Totals(e.db, user.OwnerID, start, end)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 Today's Summary\n\n💰 Total: %s%.2f\n📝 Expenses: %d",
		user.Currency(), s.Total, s.Count), nil
}

func (e *Executor) weekSummary(user *models.User) (string, error) {
	start, end := stats.WeekRange(time.Now())
	s, err := stats.Totals(e.db, user.OwnerID, start, end)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 Weekly Summary (Last 7 days)\n\n💰 Total: %s%.2f\n📝 Expenses: %d",
		user.Currency(), s.Total, s.Count), nil
}

func (e *Executor) monthSummary(user *models.User) (string, error) {
	start, end := stats.MonthRange(time.Now(), e.cfg.Server.Location())
	s, err := stats.Totals(e.db, user.OwnerID, start, end)
	if err != nil {
		return "", err
	}
	cur := user.Currency()
	reply := fmt.Sprintf("📊 Monthly Summary\n\n💰 Total: %s%.2f\n📝 Expenses: %d",
		cur, s.Total, s.Count)

	if user.MonthlyBudget > 0 {
		status := stats.Budget(user, s.Total)
		reply += fmt.Sprintf("\n\n💼 Budget: %s%.2f\n📊 Used: %.0f%%\n💵 Remaining: %s%.2f",
			cur, status.Budget, status.Percent, cur, status.Remaining)
	}
	return reply, nil
}

func (e *Executor) recentExpenses(user *models.User) (string, error) {
	expenses, err := stats.Recent(e.db, user.OwnerID, 10)
	if err != nil {
		return "", err
	}
	if len(expenses) == 0 {
		return "📋 No recent expenses found.", nil
	}

	loc := e.cfg.Server.Location()
	cur := user.Currency()
	var b strings.Builder
	b.WriteString("📋 Recent Expenses:\n\n")
	for i, exp := range expenses {
		fmt.Fprintf(&b, "%d. %s - %s%.2f (%s) - %s\n",
			i+1, exp.Description, cur, exp.Amount, exp.Category,
			exp.ExpenseTime.In(loc).Format("2 Jan"))
	}
	return b.String(), nil
}

func (e *Executor) categoryBreakdown(user *models.User) (string, error) {
	start, end := stats.MonthRange(time.Now(), e.cfg.Server.Location())
	rows, err := stats.Breakdown(e.db, user.OwnerID, start, end)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "📋 No expenses this month.", nil
	}

	cur := user.Currency()
	var b strings.Builder
	b.WriteString("📊 This Month by Category:\n\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s %s: %s%.2f (%d)\n",
			models.CategoryEmoji(row.Category), row.Category, cur, row.Total, row.Count)
	}
	return b.String(), nil
}

// deleteLast 删除最近录入的一笔（按创建时间倒序）
func (e *Executor) deleteLast(user *models.User) (string, error) {
	var expense models.Expense
	err := e.db.Where("owner_id = ?", user.OwnerID).
		Order("created_at DESC, id DESC").
		First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "❌ No expense to delete.", nil
	}
	if err != nil {
		return "", err
	}
	if err := e.db.Delete(&expense).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("🗑️ Deleted: %s - %s%.2f",
		expense.Description, user.Currency(), expense.Amount), nil
}

// dashboardLink 生成仪表盘访问链接；未设 PIN 前拒绝发放
func (e *Executor) dashboardLink(user *models.User) (string, error) {
	if !user.HasPin() {
		return "⚠️ Please set a PIN first for dashboard security!\n\nSend: pin 1234\n(Use any 4 digits you'll remember)", nil
	}
	token, err := e.store.Issue(user.OwnerID, e.cfg.Dashboard.AccessTokenTTL)
	if err != nil {
		return "", err
	}
	minutes := int(e.cfg.Dashboard.AccessTokenTTL.Minutes())
	return fmt.Sprintf("🔗 Your Dashboard:\n%s/?token=%s\n\n🔒 You'll need your PIN to access it.\n⏰ Link expires in %d minutes for security.",
		e.cfg.Server.BaseURL, token, minutes), nil
}

func (e *Executor) setPin(user *models.User, pin string) (string, error) {
	hash := models.HashPin(pin)
	if err := e.db.Model(user).Update("pin_hash", hash).Error; err != nil {
		return "", err
	}
	return "🔒 PIN set successfully!\n\nNow you can access your dashboard securely.\nSend \"dashboard\" to get your link.", nil
}

// resetPin 生成随机 4 位 PIN 并告知用户
func (e *Executor) resetPin(user *models.User) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	pin := fmt.Sprintf("%04d", n.Int64()+1000)
	hash := models.HashPin(pin)
	if err := e.db.Model(user).Update("pin_hash", hash).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("🔑 Your new PIN is: *%s*\n\nPlease remember this PIN!\nYou can change it anytime by sending: pin XXXX", pin), nil
}

// setBudget 设置月度预算，0 表示清除
func (e *Executor) setBudget(user *models.User, amount float64) (string, error) {
	updates := map[string]interface{}{
		"monthly_budget":    amount,
		"budget_alerted_at": nil,
	}
	if err := e.db.Model(user).Updates(updates).Error; err != nil {
		return "", err
	}
	if amount == 0 {
		return "💼 Budget cleared.", nil
	}
	return fmt.Sprintf("💼 Monthly budget set to: %s%.2f\n\nI'll alert you when you reach 80%% and 100%%!",
		user.Currency(), amount), nil
}

func (e *Executor) budgetStatus(user *models.User) (string, error) {
	if user.MonthlyBudget <= 0 {
		return "💼 No budget set.\n\nTo set a monthly budget, send:\nbudget 500", nil
	}
	start, end := stats.MonthRange(time.Now(), e.cfg.Server.Location())
	month, err := stats.Totals(e.db, user.OwnerID, start, end)
	if err != nil {
		return "", err
	}
	status := stats.Budget(user, month.Total)

	filled := int(status.Percent / 10)
	if filled > 10 {
		filled = 10
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)

	cur := user.Currency()
	return fmt.Sprintf("💼 Budget Status\n\n%s %.0f%%\n\n💰 Budget: %s%.2f\n💸 Spent: %s%.2f\n💵 Remaining: %s%.2f",
		bar, status.Percent, cur, status.Budget, cur, status.Spent, cur, status.Remaining), nil
}

func (e *Executor) addRecurring(user *models.User, cmd parser.Command) (string, error) {
	category := models.ValidateCategory(cmd.Category)
	recurring := models.RecurringExpense{
		OwnerID:     user.OwnerID,
		Description: cmd.Description,
		Amount:      cmd.Amount,
		Category:    category,
		DayOfMonth:  cmd.DayOfMonth,
		IsActive:    true,
	}
	if err := e.db.Create(&recurring).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("🔄 Recurring expense added!\n\n📝 %s\n💰 %s%.2f (%s)\n📅 Every month on day %d",
		cmd.Description, user.Currency(), cmd.Amount, category, cmd.DayOfMonth), nil
}

func (e *Executor) listRecurring(user *models.User) (string, error) {
	var list []models.RecurringExpense
	err := e.db.Where("owner_id = ? AND is_active = ?", user.OwnerID, true).
		Order("id").
		Find(&list).Error
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "🔄 No recurring expenses.\n\nTo add one, send:\nrecurring netflix 15 subscription 1\n(netflix, $15, subscription, day 1 of month)", nil
	}

	cur := user.Currency()
	var b strings.Builder
	b.WriteString("🔄 Recurring Expenses:\n\n")
	for _, r := range list {
		fmt.Fprintf(&b, "%d. %s - %s%.2f (%s) - Day %d\n",
			r.ID, r.Description, cur, r.Amount, r.Category, r.DayOfMonth)
	}
	b.WriteString("\nTo stop: stop recurring [id]")
	return b.String(), nil
}

// stopRecurring 停用（软删除）指定的周期支出
func (e *Executor) stopRecurring(user *models.User, id uint) (string, error) {
	var recurring models.RecurringExpense
	err := e.db.Where("id = ? AND owner_id = ? AND is_active = ?", id, user.OwnerID, true).
		First(&recurring).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "❌ Recurring expense not found.", nil
	}
	if err != nil {
		return "", err
	}
	if err := e.db.Model(&recurring).Update("is_active", false).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Stopped recurring: %s", recurring.Description), nil
}

// editExpense 按 ID 修改一笔支出，只能改自己的
func (e *Executor) editExpense(user *models.User, cmd parser.Command) (string, error) {
	category := models.ValidateCategory(cmd.Category)
	result := e.db.Model(&models.Expense{}).
		Where("id = ? AND owner_id = ?", cmd.ID, user.OwnerID).
		Updates(map[string]interface{}{
			"description": cmd.Description,
			"amount":      cmd.Amount,
			"category":    category,
		})
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "❌ Expense not found or you cannot edit it.", nil
	}
	return fmt.Sprintf("✏️ Updated expense #%d:\n%s - %s%.2f (%s)",
		cmd.ID, cmd.Description, user.Currency(), cmd.Amount, category), nil
}

// exportMonth 导出当月支出为内联 CSV，方便粘贴到表格软件
func (e *Executor) exportMonth(user *models.User) (string, error) {
	now := time.Now()
	loc := e.cfg.Server.Location()
	start, end := stats.MonthRange(now, loc)

	var expenses []models.Expense
	err := e.db.Where("owner_id = ? AND expense_time >= ? AND expense_time < ?",
		user.OwnerID, start, end).
		Order("expense_time").
		Find(&expenses).Error
	if err != nil {
		return "", err
	}
	if len(expenses) == 0 {
		return "📋 No expenses to export this month.", nil
	}

	var csv strings.Builder
	csv.WriteString("Date,Description,Category,Amount\n")
	total := 0.0
	for _, exp := range expenses {
		fmt.Fprintf(&csv, "%s,%s,%s,%.2f\n",
			exp.ExpenseTime.In(loc).Format("2006-01-02"), exp.Description, exp.Category, exp.Amount)
		total += exp.Amount
	}
	fmt.Fprintf(&csv, "\nTOTAL,,,%.2f", total)

	return fmt.Sprintf("📊 Export (%s)\n\n```\n%s\n```\n\n💡 Copy this and paste into Excel/Google Sheets",
		now.In(loc).Format("January 2006"), csv.String()), nil
}

func (e *Executor) setCurrency(user *models.User, symbol string) (string, error) {
	if err := e.db.Model(user).Update("currency_symbol", symbol).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("💱 Currency symbol set to: %s", symbol), nil
}

const helpText = `💰 *Expense Tracker*

*Quick Add (auto-categorizes!):*
• coffee 5 → ☕ food
• grab 15 → 🚗 transport
• ntuc 50 → 🛒 shopping
• netflix 15 → 📺 subscription

*Or specify category:*
• lunch 15 food

*Shortcuts:*
• ? → Today's spending
• ?? → This week
• ??? → This month
• $ → Dashboard link
• ! → Delete last expense

*Other:*
• budget 500 → Set budget
• pin 1234 → Set PIN
• recurring netflix 15 subscription 1 → Monthly recurring
• export → This month as CSV
• help → This message

*Auto-categories:* coffee, lunch, grab, mrt, ntuc, netflix, and 50+ more!`
