// Package mailjet はMailjet Send API v3.1を使用したメール送信を提供します。
package mailjet

import (
	"context"
	"errors"
	"fmt"

	mj "github.com/mailjet/mailjet-apiv3-go/v4"

	"animal_detector/internal/feature/alert/domain/entity"
	"animal_detector/internal/feature/alert/usecase"
)

const statusSuccess = "success"

type sendFunc func(msgs *mj.MessagesV31) (*mj.ResultsV31, error)

// MailjetMailer はMailjetで通知メールを送信します。
type MailjetMailer struct {
	cfg  Config
	send sendFunc
}

var _ usecase.Mailer = (*MailjetMailer)(nil)

// NewMailjetMailer はMailjetMailerの新しいインスタンスを生成します。
func NewMailjetMailer(cfg Config) (*MailjetMailer, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("mailjet: MAILJET_API_KEY and MAILJET_API_SECRET are required")
	}
	if cfg.SenderEmail == "" || cfg.ReceiverEmail == "" {
		return nil, errors.New("mailjet: MAILJET_SENDER_EMAIL and MAILJET_RECEIVER_EMAIL are required")
	}
	client := mj.NewMailjetClient(cfg.APIKey, cfg.APISecret)
	return newMailer(cfg, func(msgs *mj.MessagesV31) (*mj.ResultsV31, error) {
		return client.SendMailV31(msgs)
	}), nil
}

func newMailer(cfg Config, send sendFunc) *MailjetMailer {
	return &MailjetMailer{cfg: cfg, send: send}
}

// Send はメッセージを1通送信します。プロバイダのステータスがsuccess以外ならエラーです。
func (m *MailjetMailer) Send(ctx context.Context, msg entity.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msgs := &mj.MessagesV31{Info: []mj.InfoMessagesV31{{
		From: &mj.RecipientV31{
			Email: m.cfg.SenderEmail,
			Name:  m.cfg.SenderName,
		},
		To: &mj.RecipientsV31{{
			Email: m.cfg.ReceiverEmail,
			Name:  m.cfg.ReceiverName,
		}},
		Subject:  msg.Subject,
		TextPart: msg.TextBody,
	}}}

	res, err := m.send(msgs)
	if err != nil {
		return fmt.Errorf("mailjet send failed: %w", err)
	}
	if res == nil || len(res.ResultsV31) == 0 {
		return errors.New("mailjet: empty send result")
	}
	for _, r := range res.ResultsV31 {
		if r.Status != statusSuccess {
			return fmt.Errorf("mailjet: message status %q", r.Status)
		}
	}
	return nil
}
