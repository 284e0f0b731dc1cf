// Package sender отправляет абонентам почтовые напоминания об оплате.
package sender

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"github.com/magabrotheeeer/trainer-billing/internal/config"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// Service отправляет письма-напоминания через SMTP со STARTTLS.
type Service struct {
	cfg *config.Config
	log *slog.Logger
}

// New создает новый экземпляр Service.
func New(cfg *config.Config, log *slog.Logger) *Service {
	return &Service{
		cfg: cfg,
		log: log,
	}
}

// SendPaymentNotice разбирает напоминание из очереди и отправляет
// письмо абоненту. Текст письма зависит от корзины напоминания.
func (s *Service) SendPaymentNotice(body []byte) error {
	var notice models.PaymentNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject, bodyText := composeMessage(notice)
	to := []string{notice.Email}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.cfg.SMTP.From),
		fmt.Sprintf("To: %s", strings.Join(to, ";")),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	addr := s.cfg.SMTP.Host + ":" + s.cfg.SMTP.Port

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		s.log.Error("failed to dial SMTP server", sl.Err(err))
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTP.Host)
	if err != nil {
		s.log.Error("failed to create SMTP client", sl.Err(err))
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTP.Host,
	}
	ok, _ := client.Extension("STARTTLS")
	if !ok {
		s.log.Error("SMTP server does not support STARTTLS")
		return fmt.Errorf("smtp server does not support STARTTLS")
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		s.log.Error("failed to start TLS", sl.Err(err))
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.Host)
	if err = client.Auth(auth); err != nil {
		s.log.Error("smtp auth failed", sl.Err(err))
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err = client.Mail(s.cfg.SMTP.From); err != nil {
		s.log.Error("failed to set mail sender", sl.Err(err))
		return fmt.Errorf("failed to set mail sender: %w", err)
	}

	for _, addr := range to {
		if err = client.Rcpt(addr); err != nil {
			s.log.Error("failed to set recipient", sl.Err(err))
			return fmt.Errorf("failed to set recipient %s: %w", addr, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get write closer", sl.Err(err))
		return fmt.Errorf("failed to get write closer: %w", err)
	}
	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("failed to write message", sl.Err(err))
		return fmt.Errorf("failed to write message: %w", err)
	}
	err = wc.Close()
	if err != nil {
		s.log.Error("failed to close write closer", sl.Err(err))
		return fmt.Errorf("failed to close write closer: %w", err)
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return fmt.Errorf("failed to quit SMTP client: %w", err)
	}

	s.log.Info("email sent successfully", "to", to, "kind", notice.Kind)
	return nil
}

func composeMessage(notice models.PaymentNotice) (string, string) {
	dueDate := notice.DueDate.Format("02.01.2006")
	switch notice.Kind {
	case rabbitmq.KeyUpcoming:
		return "Напоминание о предстоящей оплате",
			fmt.Sprintf("Здравствуйте, %s!\n\nОплата %.2f за тренировки ожидается %s.\n\nПожалуйста, внесите её вовремя.",
				notice.SubscriberName, notice.Amount, dueDate)
	case rabbitmq.KeyDue:
		return "Сегодня день оплаты",
			fmt.Sprintf("Здравствуйте, %s!\n\nСегодня, %s, день оплаты %.2f за тренировки.",
				notice.SubscriberName, dueDate, notice.Amount)
	default:
		return "Оплата просрочена",
			fmt.Sprintf("Здравствуйте, %s!\n\nОплата %.2f за тренировки просрочена на %d дн. (срок был %s).\n\nПожалуйста, погасите задолженность.",
				notice.SubscriberName, notice.Amount, notice.DaysOverdue, dueDate)
	}
}
