// Package handler はdetectionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"animal_detector/internal/api"
	"animal_detector/internal/feature/detection/domain/entity"
	"animal_detector/internal/feature/detection/usecase"
)

const (
	// FormField はアップロード画像のマルチパートフィールド名です。
	FormField = "file"

	msgNoFile        = "No file uploaded"
	msgInternalError = "Internal Server Error"
)

// DetectionUsecase は画像推論のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DetectionUsecase interface {
	Predict(ctx context.Context, imageData []byte) (*entity.Result, error)
}

// DetectionHandler は画像アップロードと推論のHTTPリクエストを処理します。
type DetectionHandler struct {
	uc DetectionUsecase
}

// NewDetectionHandler はDetectionHandlerの新しいインスタンスを生成します。
func NewDetectionHandler(uc DetectionUsecase) *DetectionHandler {
	return &DetectionHandler{uc: uc}
}

// Predict は画像をアップロードして動物を検出します。
//
// エンドポイント: POST /predict
// Content-Type: multipart/form-data
// フィールド: file（画像ファイル）
//
// 検出結果は {"animals_detected": [...]}、閾値モードで0件の場合は {"message": "..."} を返します。
// 推論・記録・通知のいずれかで失敗した場合は原因を問わず 500 を返します。
func (h *DetectionHandler) Predict(c *gin.Context) {
	file, err := c.FormFile(FormField)
	if err != nil {
		slog.Warn("no file in predict request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgNoFile})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternalError})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()

	imageData, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
	if err != nil {
		slog.Error("failed to read uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternalError})
		return
	}

	result, err := h.uc.Predict(c.Request.Context(), imageData)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyImage):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgNoFile})
		case errors.Is(err, usecase.ErrImageTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "File too large"})
		default:
			slog.Error("prediction failed", "error", err, "filename", file.Filename)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternalError})
		}
		return
	}

	if !result.HasDetections() && result.Message != "" {
		slog.Info("formatted response", "request_id", result.RequestID, "message", result.Message)
		c.JSON(http.StatusOK, api.MessageResponse{Message: result.Message})
		return
	}

	out := api.PredictResponse{AnimalsDetected: make([]api.DetectionResponse, 0, len(result.Detections))}
	for _, d := range result.Detections {
		out.AnimalsDetected = append(out.AnimalsDetected, api.DetectionResponse{
			Type:       d.Type,
			Confidence: d.Confidence,
		})
	}
	slog.Info("formatted response", "request_id", result.RequestID, "animals_detected", len(out.AnimalsDetected))
	c.JSON(http.StatusOK, out)
}
