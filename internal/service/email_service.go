package service

import (
	"fmt"

	"social-network-backend/config"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
	mail "gopkg.in/mail.v2"
)

type EmailService struct {
	dialer *mail.Dialer
	from   string
}

func NewEmailService() *EmailService {
	cfg := config.AppConfig
	dialer := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTPUsername,
	}
}

// SendOTPEmail 发送验证码邮件
func (s *EmailService) SendOTPEmail(to, code string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "您的验证码")
	m.SetBody("text/html", fmt.Sprintf(`
        <h2>邮箱验证</h2>
        <p>您的验证码是：<strong>%s</strong></p>
        <p>验证码 10 分钟内有效，请勿泄露给他人。</p>
    `, code))

	if err := s.dialer.DialAndSend(m); err != nil {
		util.Logger.Error("发送验证码邮件失败", zap.Error(err), zap.String("to", to))
		return err
	}

	util.Logger.Info("验证码邮件已发送", zap.String("to", to))
	return nil
}
