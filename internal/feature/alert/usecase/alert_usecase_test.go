package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal_detector/internal/feature/alert/domain/entity"
	"animal_detector/internal/feature/alert/usecase"
	detection "animal_detector/internal/feature/detection/domain/entity"
)

type mockMailer struct {
	SendFunc func(ctx context.Context, msg entity.Message) error
	sent     []entity.Message
}

func (m *mockMailer) Send(ctx context.Context, msg entity.Message) error {
	m.sent = append(m.sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

type mockAdvisor struct {
	AdviseFunc func(ctx context.Context, prompt string) (string, error)
	prompts    []string
}

func (m *mockAdvisor) Advise(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.AdviseFunc(ctx, prompt)
}

var sample = []detection.Detection{
	{Type: "Lion", Confidence: 93.27},
	{Type: "Hyena", Confidence: 80},
	{Type: "Lion", Confidence: 85.5},
}

func TestBuildBody(t *testing.T) {
	t.Parallel()

	want := "The following animals have been detected:\n\n" +
		"🦁 Type: Lion, Confidence: 93.27%\n" +
		"🦁 Type: Hyena, Confidence: 80.0%\n" +
		"🦁 Type: Lion, Confidence: 85.5%\n"
	assert.Equal(t, want, usecase.BuildBody(sample))
}

func TestFormatConfidence(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		80:    "80.0",
		93.27: "93.27",
		0:     "0.0",
		100:   "100.0",
		50.1:  "50.1",
	}
	for in, want := range cases {
		assert.Equal(t, want, usecase.FormatConfidence(in), "input %v", in)
	}
}

func TestAlertUsecase_NotifyDetections(t *testing.T) {
	ctx := context.Background()

	t.Run("success: exactly one email without advisor", func(t *testing.T) {
		mailer := &mockMailer{}
		uc := usecase.NewAlertUsecase(mailer, nil)

		require.NoError(t, uc.NotifyDetections(ctx, sample))
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "Animal Detection Alert!", mailer.sent[0].Subject)
		assert.Equal(t, usecase.BuildBody(sample), mailer.sent[0].TextBody)
	})

	t.Run("success: advisory appended", func(t *testing.T) {
		mailer := &mockMailer{}
		advisor := &mockAdvisor{AdviseFunc: func(ctx context.Context, prompt string) (string, error) {
			return "  Stay indoors.  ", nil
		}}
		uc := usecase.NewAlertUsecase(mailer, advisor)

		require.NoError(t, uc.NotifyDetections(ctx, sample))
		require.Len(t, advisor.prompts, 1)
		assert.Contains(t, advisor.prompts[0], "Lion, Hyena.")
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, usecase.BuildBody(sample)+"\nSafety advisory:\nStay indoors.\n", mailer.sent[0].TextBody)
	})

	t.Run("success: advisor failure still sends plain body", func(t *testing.T) {
		mailer := &mockMailer{}
		advisor := &mockAdvisor{AdviseFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("quota exceeded")
		}}
		uc := usecase.NewAlertUsecase(mailer, advisor)

		require.NoError(t, uc.NotifyDetections(ctx, sample))
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, usecase.BuildBody(sample), mailer.sent[0].TextBody)
	})

	t.Run("error: mailer failure is returned", func(t *testing.T) {
		sendErr := errors.New("mailjet status error")
		mailer := &mockMailer{SendFunc: func(ctx context.Context, msg entity.Message) error { return sendErr }}
		uc := usecase.NewAlertUsecase(mailer, nil)

		err := uc.NotifyDetections(ctx, sample)
		assert.ErrorIs(t, err, sendErr)
	})

	t.Run("error: no detections sends nothing", func(t *testing.T) {
		mailer := &mockMailer{}
		uc := usecase.NewAlertUsecase(mailer, nil)

		assert.ErrorIs(t, uc.NotifyDetections(ctx, nil), usecase.ErrNoDetections)
		assert.Empty(t, mailer.sent)
	})
}
