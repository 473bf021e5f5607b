// Package parser 将自由文本聊天消息解析为结构化命令。
// 匹配规则为显式有序的 (正则, 构造器) 列表，自上而下首个命中生效；
// 多个记账句式在语法上互相重叠，调整顺序会改变解析结果，勿随意重排。
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"spendbot/models"
)

// Kind 命令类型标签
type Kind string

const (
	KindAddExpense    Kind = "add"
	KindToday         Kind = "today"
	KindWeek          Kind = "week"
	KindMonth         Kind = "month"
	KindRecent        Kind = "recent"
	KindBreakdown     Kind = "breakdown"
	KindDeleteLast    Kind = "delete_last"
	KindDashboard     Kind = "dashboard"
	KindSetPin        Kind = "set_pin"
	KindResetPin      Kind = "reset_pin"
	KindSetBudget     Kind = "set_budget"
	KindBudgetStatus  Kind = "budget_status"
	KindAddRecurring  Kind = "add_recurring"
	KindListRecurring Kind = "list_recurring"
	KindStopRecurring Kind = "stop_recurring"
	KindEdit          Kind = "edit"
	KindExport        Kind = "export"
	KindSetCurrency   Kind = "set_currency"
	KindHelp          Kind = "help"
	KindUnknown       Kind = "unknown"
)

// Command 解析结果，Kind 决定哪些字段有效
type Command struct {
	Kind        Kind
	Description string
	Amount      float64
	Category    string // 记账命令中为空表示待自动分类
	PIN         string
	ID          uint
	DayOfMonth  int
	Currency    string
}

// shortcuts 单字符/单词快捷命令，完全相等才触发；
// ?/??/???各自独立，靠完全匹配区分，绝不混淆
var shortcuts = map[string]Kind{
	"?":              KindToday,
	"today":          KindToday,
	"??":             KindWeek,
	"week":           KindWeek,
	"weekly":         KindWeek,
	"???":            KindMonth,
	"month":          KindMonth,
	"monthly":        KindMonth,
	"total":          KindMonth,
	"$":              KindDashboard,
	"dashboard":      KindDashboard,
	"link":           KindDashboard,
	"!":              KindDeleteLast,
	"delete":         KindDeleteLast,
	"undo":           KindDeleteLast,
	"remove":         KindDeleteLast,
	"recent":         KindRecent,
	"last":           KindRecent,
	"history":        KindRecent,
	"categories":     KindBreakdown,
	"breakdown":      KindBreakdown,
	"budget":         KindBudgetStatus,
	"budget status":  KindBudgetStatus,
	"recurring":      KindListRecurring,
	"recurring list": KindListRecurring,
	"export":         KindExport,
	"export csv":     KindExport,
	"reset pin":      KindResetPin,
	"forgot pin":     KindResetPin,
	"help":           KindHelp,
	"/help":          KindHelp,
	"/start":         KindHelp,
}

// 金额统一匹配：最多两位小数，无千分位，无负号
const amountPat = `(\d+(?:\.\d{1,2})?)`

var (
	rePin       = regexp.MustCompile(`^(?:set\s+)?pin\s+(\d{4})$`)
	reSetBudget = regexp.MustCompile(`^budget\s+` + amountPat + `$`)
	reRecurring = regexp.MustCompile(`^recurring\s+(.+?)\s+` + amountPat + `\s+([a-z]+)\s+(\d{1,2})$`)
	reStopRecur = regexp.MustCompile(`^stop\s+recurring\s+(\d+)$`)
	reEdit      = regexp.MustCompile(`^edit\s+(\d+)\s+(.+?)\s+` + amountPat + `\s+([a-z]+)$`)
	reCurrency  = regexp.MustCompile(`^currency\s+(\S{1,5})$`)
)

// addPattern 记账句式：正则 + 构造器。顺序即优先级。
type addPattern struct {
	re    *regexp.Regexp
	build func(m []string) (Command, bool)
}

// addPatterns 按固定优先级排列的记账句式：
//  1. add <desc> <amount> <category>
//  2. <desc> <amount> <category>
//  3. <category> <desc> <amount>（仅当首词为已知类别）
//  4. <desc> $<amount>
//  5. <amount> <category> <desc>
//  6. <desc> <amount>（类别留空，后续自动分类）
var addPatterns = []addPattern{
	{
		re: regexp.MustCompile(`^add\s+(.+?)\s+` + amountPat + `\s+([a-z]+)$`),
		build: func(m []string) (Command, bool) {
			return buildAdd(m[1], m[2], m[3])
		},
	},
	{
		re: regexp.MustCompile(`^([a-z][a-z\s]*?)\s+` + amountPat + `\s+([a-z]+)$`),
		build: func(m []string) (Command, bool) {
			return buildAdd(m[1], m[2], m[3])
		},
	},
	{
		re: regexp.MustCompile(`^([a-z]+)\s+([a-z][a-z\s]*?)\s+` + amountPat + `$`),
		build: func(m []string) (Command, bool) {
			if !models.IsValidCategory(m[1]) {
				return Command{}, false
			}
			return buildAdd(m[2], m[3], m[1])
		},
	},
	{
		re: regexp.MustCompile(`^([a-z][a-z\s]*?)\s*\$` + amountPat + `$`),
		build: func(m []string) (Command, bool) {
			return buildAdd(m[1], m[2], "")
		},
	},
	{
		re: regexp.MustCompile(`^` + amountPat + `\s+([a-z]+)\s+(.+)$`),
		build: func(m []string) (Command, bool) {
			return buildAdd(m[3], m[1], m[2])
		},
	},
	{
		re: regexp.MustCompile(`^([a-z][a-z\s]*?)\s+` + amountPat + `$`),
		build: func(m []string) (Command, bool) {
			return buildAdd(m[1], m[2], "")
		},
	},
}

// buildAdd 构造记账命令；金额为零视为拒绝，整条消息按未知处理
func buildAdd(desc, amount, category string) (Command, bool) {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil || v <= 0 {
		return Command{}, false
	}
	return Command{
		Kind:        KindAddExpense,
		Description: strings.TrimSpace(desc),
		Amount:      v,
		Category:    strings.ToLower(category),
	}, true
}

// Parse 解析一条聊天消息，无法识别时返回 Unknown（调用方应保持沉默）
func Parse(raw string) Command {
	msg := strings.ToLower(strings.TrimSpace(raw))
	if msg == "" {
		return Command{Kind: KindUnknown}
	}

	// 快捷命令：完全相等
	if kind, ok := shortcuts[msg]; ok {
		return Command{Kind: kind}
	}

	// pin 1234 / set pin 1234；
	// 格式不对的 pin 消息直接按未知处理，不能掉进记账句式变成一笔支出
	if strings.HasPrefix(msg, "pin ") || strings.HasPrefix(msg, "set pin ") {
		if m := rePin.FindStringSubmatch(msg); m != nil {
			return Command{Kind: KindSetPin, PIN: m[1]}
		}
		return Command{Kind: KindUnknown}
	}

	// budget 500（budget 0 表示清除预算）
	if m := reSetBudget.FindStringSubmatch(msg); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return Command{Kind: KindSetBudget, Amount: v}
	}

	// recurring netflix 15 subscription 1
	if m := reRecurring.FindStringSubmatch(msg); m != nil {
		day, _ := strconv.Atoi(m[4])
		if day >= 1 && day <= 31 {
			if cmd, ok := buildAdd(m[1], m[2], m[3]); ok {
				cmd.Kind = KindAddRecurring
				cmd.DayOfMonth = day
				return cmd
			}
		}
		return Command{Kind: KindUnknown}
	}

	// stop recurring 3
	if m := reStopRecur.FindStringSubmatch(msg); m != nil {
		id, _ := strconv.ParseUint(m[1], 10, 32)
		return Command{Kind: KindStopRecurring, ID: uint(id)}
	}

	// edit 12 lunch 18 food
	if m := reEdit.FindStringSubmatch(msg); m != nil {
		id, _ := strconv.ParseUint(m[1], 10, 32)
		if cmd, ok := buildAdd(m[2], m[3], m[4]); ok {
			cmd.Kind = KindEdit
			cmd.ID = uint(id)
			return cmd
		}
		return Command{Kind: KindUnknown}
	}

	// currency sgd / currency €
	if m := reCurrency.FindStringSubmatch(msg); m != nil {
		return Command{Kind: KindSetCurrency, Currency: strings.ToUpper(m[1])}
	}

	// 记账句式，自上而下首个命中生效
	for _, p := range addPatterns {
		if m := p.re.FindStringSubmatch(msg); m != nil {
			if cmd, ok := p.build(m); ok {
				return cmd
			}
		}
	}

	return Command{Kind: KindUnknown}
}
