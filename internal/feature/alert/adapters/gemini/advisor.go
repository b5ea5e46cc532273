// Package gemini はGoogle Gemini APIを使用した安全アドバイス生成を提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"animal_detector/internal/feature/alert/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// errEmptyResponse はモデルが候補を1件も返さなかった場合のエラーです。
var errEmptyResponse = errors.New("gemini returned no candidates")

type generateFunc func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)

// GeminiAdvisor はGoogle Gemini APIを使用して安全アドバイスを生成します。
type GeminiAdvisor struct {
	generate generateFunc
	model    string
}

// GeminiAdvisorがAdvisorを実装していることをコンパイル時に検証します。
var _ usecase.Advisor = (*GeminiAdvisor)(nil)

// NewGeminiAdvisor はADCを使用してGeminiAdvisorの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION
// または GOOGLE_API_KEY が必要です。
func NewGeminiAdvisor(ctx context.Context, model string) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newAdvisor(model, func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
		return client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	}), nil
}

func newAdvisor(model string, generate generateFunc) *GeminiAdvisor {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiAdvisor{generate: generate, model: model}
}

// Advise はプロンプトから短いアドバイス文を生成します。
// 候補はあるがテキストが空の場合は空文字を返し、呼び出し側で本文のみ送信します。
func (g *GeminiAdvisor) Advise(ctx context.Context, prompt string) (string, error) {
	resp, err := g.generate(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errEmptyResponse
	}
	return strings.TrimSpace(resp.Text()), nil
}
