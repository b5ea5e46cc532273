package di

import (
	"context"
	"log/slog"

	"animal_detector/internal/feature/alert/adapters/gemini"
	"animal_detector/internal/feature/alert/adapters/mailjet"
	alertusecase "animal_detector/internal/feature/alert/usecase"
	"animal_detector/internal/feature/detection/usecase"
	"animal_detector/internal/platform/env"
)

// NewNotifier creates the email alert notifier.
// It returns a nil Notifier when MAILJET_API_KEY is not set.
func NewNotifier(ctx context.Context) (usecase.Notifier, error) {
	cfg := mailjet.LoadConfig()
	if !cfg.Enabled() {
		return nil, nil
	}
	mailer, err := mailjet.NewMailjetMailer(cfg)
	if err != nil {
		return nil, err
	}

	var advisor alertusecase.Advisor
	if env.Bool("ALERT_ADVISORY_ENABLED", false) {
		a, err := gemini.NewGeminiAdvisor(ctx, env.String("ALERT_ADVISORY_MODEL", gemini.DefaultModel))
		if err != nil {
			slog.Warn("alert advisory unavailable; sending plain alerts", "error", err)
		} else {
			advisor = a
		}
	}
	return alertusecase.NewAlertUsecase(mailer, advisor), nil
}
