package mailjet

import (
	"animal_detector/internal/platform/env"
)

const (
	DefaultSenderName   = "Animal Detector"
	DefaultReceiverName = "User"
)

// Config はMailjet送信の設定です。
type Config struct {
	APIKey        string
	APISecret     string
	SenderEmail   string
	SenderName    string
	ReceiverEmail string
	ReceiverName  string
}

// LoadConfig は環境変数からMailjet設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIKey:        env.String("MAILJET_API_KEY", ""),
		APISecret:     env.String("MAILJET_API_SECRET", ""),
		SenderEmail:   env.String("MAILJET_SENDER_EMAIL", ""),
		SenderName:    env.String("MAILJET_SENDER_NAME", DefaultSenderName),
		ReceiverEmail: env.String("MAILJET_RECEIVER_EMAIL", ""),
		ReceiverName:  env.String("MAILJET_RECEIVER_NAME", DefaultReceiverName),
	}
}

// Enabled はAPIキーが設定されている場合にtrueを返します。
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
