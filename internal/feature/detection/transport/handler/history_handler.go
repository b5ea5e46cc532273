package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"animal_detector/internal/api"
	"animal_detector/internal/feature/detection/domain/entity"
	"animal_detector/internal/feature/detection/usecase"
)

// HistoryUsecase は検出履歴参照のユースケースインターフェースを定義します。
type HistoryUsecase interface {
	ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error)
	SheetFile(ctx context.Context) (string, error)
}

// HistoryHandler は検出履歴のHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler はHistoryHandlerの新しいインスタンスを生成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List は新しい順に検出履歴を返します。
//
// エンドポイント例:
// GET /v1/detections?limit=50
func (h *HistoryHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultHistoryLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limit must be an integer"})
		return
	}

	records, err := h.uc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("failed to list detections", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternalError})
		return
	}

	out := make([]api.DetectionRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, api.DetectionRecordResponse{
			ID:         r.ID,
			RequestID:  r.RequestID,
			Animal:     r.Animal,
			Confidence: r.Confidence,
			DetectedAt: r.DetectedAt.UTC(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// DownloadSheet はスプレッドシートログをダウンロードさせます。
//
// エンドポイント: GET /v1/detections/sheet
func (h *HistoryHandler) DownloadSheet(c *gin.Context) {
	path, err := h.uc.SheetFile(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrSheetUnavailable) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "detection sheet not available"})
			return
		}
		slog.Error("failed to locate detection sheet", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternalError})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.FileAttachment(path, filepath.Base(path))
}
