package roboflow

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"animal_detector/internal/feature/detection/adapters/roboflow/dto"
	"animal_detector/internal/feature/detection/domain/entity"
	"animal_detector/internal/feature/detection/usecase"
)

// maxErrorBody はエラーレスポンスから読み込む最大バイト数です。
const maxErrorBody = 4 << 10

// RoboflowDetector はRoboflow Workflow APIで物体検出を行うDetector実装です。
type RoboflowDetector struct {
	cfg    Config
	client *http.Client
}

// RoboflowDetectorがDetectorを実装していることをコンパイル時に検証します。
var _ usecase.Detector = (*RoboflowDetector)(nil)

// NewRoboflowDetector は指定された設定とHTTPクライアントでRoboflowDetectorを生成します。
func NewRoboflowDetector(cfg Config, client *http.Client) (*RoboflowDetector, error) {
	if cfg.APIKey == "" || cfg.Workspace == "" || cfg.Workflow == "" {
		return nil, errors.New("roboflow: ROBOFLOW_API_KEY, ROBOFLOW_WORKSPACE and ROBOFLOW_WORKFLOW are required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return &RoboflowDetector{cfg: cfg, client: client}, nil
}

// Detect は画像をワークフローに送信し、最初の出力の予測リストを返します。
func (r *RoboflowDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Prediction, error) {
	payload, err := json.Marshal(dto.WorkflowRequest{
		APIKey:   r.cfg.APIKey,
		UseCache: r.cfg.UseCache,
		Inputs: map[string]dto.WorkflowImage{
			"image": {Type: "base64", Value: base64.StdEncoding.EncodeToString(imageData)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("roboflow: encode request: %w", err)
	}

	u := fmt.Sprintf("%s/%s/workflows/%s",
		strings.TrimRight(r.cfg.APIURL, "/"),
		url.PathEscape(r.cfg.Workspace),
		url.PathEscape(r.cfg.Workflow),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roboflow request failed: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("roboflow http %d: %s", res.StatusCode, readErrorMessage(res.Body))
	}

	var body dto.WorkflowResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("roboflow: decode response: %w", err)
	}
	if len(body.Outputs) == 0 {
		return nil, errors.New("roboflow: workflow returned no outputs")
	}

	raw := body.Outputs[0].Predictions.Predictions
	slog.Debug("roboflow response", "outputs", len(body.Outputs), "predictions", len(raw))

	predictions := make([]entity.Prediction, 0, len(raw))
	for _, p := range raw {
		predictions = append(predictions, entity.Prediction{
			Class:      p.Class,
			Confidence: p.Confidence,
		})
	}
	return predictions, nil
}

// readErrorMessage はエラーレスポンスのmessageフィールド、なければ本文の先頭を返します。
func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return "empty body"
	}
	var e dto.ErrorResponse
	if err := json.Unmarshal(b, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(b))
}
