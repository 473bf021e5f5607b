package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spendbot/config"
)

func TestEmailService_Disabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})

	assert.False(t, svc.Enabled())

	err := svc.SendBudgetAlert("Alice", "$", 450, 500, 90)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "未启用")
}

// 启用但未配置收件人时同样视为未启用
func TestEmailService_NoRecipient(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true, To: ""})
	assert.False(t, svc.Enabled())
}

func TestGenerateBudgetAlertBody(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true, To: "me@example.com"})

	body := svc.generateBudgetAlertBody("Alice", "$", 450, 500, 90)
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "$450.00 / $500.00")
	assert.Contains(t, body, "90%")
	assert.Contains(t, body, "接近预算")

	over := svc.generateBudgetAlertBody("Alice", "$", 600, 500, 120)
	assert.Contains(t, over, "超出预算")
}
