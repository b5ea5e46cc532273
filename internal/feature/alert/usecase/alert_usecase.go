// Package usecase はalertフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"animal_detector/internal/feature/alert/domain/entity"
	detection "animal_detector/internal/feature/detection/domain/entity"
)

const (
	// AlertSubject は通知メールの件名です。
	AlertSubject = "Animal Detection Alert!"
	// AlertIntro は通知メール本文の先頭行です。
	AlertIntro = "The following animals have been detected:\n\n"
	// AdvisoryHeading はアドバイス部分の見出しです。
	AdvisoryHeading = "\nSafety advisory:\n"
	// AdvisoryPromptTemplate は安全アドバイス生成のプロンプトテンプレートです。
	AdvisoryPromptTemplate = "In two or three short sentences of plain English, give safety advice for people near a farm or village where these wild animals were just seen: %s."
)

// ErrNoDetections は検出0件で通知しようとした場合のエラーです。
var ErrNoDetections = errors.New("no detections to notify")

// Mailer は通知メールを送信するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Mailer interface {
	Send(ctx context.Context, msg entity.Message) error
}

// Advisor はプロンプトから短い安全アドバイスを生成します。
type Advisor interface {
	Advise(ctx context.Context, prompt string) (string, error)
}

type alertUsecase struct {
	mailer  Mailer
	advisor Advisor
}

// NewAlertUsecase はalertUsecaseの新しいインスタンスを生成します。advisorはnilでも構いません。
func NewAlertUsecase(mailer Mailer, advisor Advisor) *alertUsecase {
	return &alertUsecase{mailer: mailer, advisor: advisor}
}

// NotifyDetections は検出結果を1通のメールにまとめて送信します。
// アドバイス生成の失敗はログに残すだけで、本文のみで送信を続けます。
func (u *alertUsecase) NotifyDetections(ctx context.Context, detections []detection.Detection) error {
	if len(detections) == 0 {
		return ErrNoDetections
	}

	body := BuildBody(detections)
	if u.advisor != nil {
		advice, err := u.advisor.Advise(ctx, fmt.Sprintf(AdvisoryPromptTemplate, animalNames(detections)))
		switch {
		case err != nil:
			slog.Warn("advisory generation failed; sending plain alert", "error", err)
		case strings.TrimSpace(advice) != "":
			body += AdvisoryHeading + strings.TrimSpace(advice) + "\n"
		}
	}

	msg := entity.Message{Subject: AlertSubject, TextBody: body}
	if err := u.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailer failed: %w", err)
	}
	slog.Info("alert email sent", "detections", len(detections))
	return nil
}

// BuildBody は通知メール本文を組み立てます。1検出につき1行です。
func BuildBody(detections []detection.Detection) string {
	var b strings.Builder
	b.WriteString(AlertIntro)
	for _, d := range detections {
		fmt.Fprintf(&b, "🦁 Type: %s, Confidence: %s%%\n", d.Type, FormatConfidence(d.Confidence))
	}
	return b.String()
}

// FormatConfidence は信頼度を最短表現で整形します。整数値でも "80.0" のように小数点を残します。
func FormatConfidence(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func animalNames(detections []detection.Detection) string {
	seen := make(map[string]bool, len(detections))
	names := make([]string, 0, len(detections))
	for _, d := range detections {
		if seen[d.Type] {
			continue
		}
		seen[d.Type] = true
		names = append(names, d.Type)
	}
	return strings.Join(names, ", ")
}
