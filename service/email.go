package service

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"spendbot/config"
)

// EmailService 邮件服务，用于预算告警通知
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 邮件服务是否已启用
func (s *EmailService) Enabled() bool {
	return s.cfg.Enabled && s.cfg.To != ""
}

// SendBudgetAlert 发送预算告警邮件
// percent 为当月支出占预算的百分比，≥100 时按超支文案发送
func (s *EmailService) SendBudgetAlert(displayName, currency string, spent, budget, percent float64) error {
	if !s.Enabled() {
		return fmt.Errorf("邮件服务未启用，请配置 EMAIL_ENABLED=true")
	}

	subject := "【SpendBot】预算提醒"
	if percent >= 100 {
		subject = "【SpendBot】预算已超支"
	}
	body := s.generateBudgetAlertBody(displayName, currency, spent, budget, percent)

	return s.sendEmail(s.cfg.To, subject, body)
}

// generateBudgetAlertBody 生成预算告警邮件内容
func (s *EmailService) generateBudgetAlertBody(displayName, currency string, spent, budget, percent float64) string {
	headline := "⚠️ 本月支出已接近预算"
	if percent >= 100 {
		headline = "🚨 本月支出已超出预算"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #f59e0b, #d97706); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .stat-box { background: linear-gradient(135deg, #fffbeb, #fef3c7); border: 2px dashed #f59e0b; border-radius: 12px; padding: 30px; text-align: center; margin: 30px 0; }
        .stat { font-size: 32px; font-weight: bold; color: #d97706; font-family: 'Courier New', monospace; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 SpendBot</h1>
        </div>
        <div class="content">
            <p>%s，您好！</p>
            <p>%s：</p>
            <div class="stat-box">
                <span class="stat">%s%.2f / %s%.2f（%.0f%%）</span>
            </div>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© SpendBot - 您的记账小助手</p>
        </div>
    </div>
</body>
</html>
`, displayName, headline, currency, spent, currency, budget, percent)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【SpendBot】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— SpendBot</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}
