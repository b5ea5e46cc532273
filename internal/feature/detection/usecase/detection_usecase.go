package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"animal_detector/internal/feature/detection/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（32MB）です。高解像度カメラのJPEGも受け付けます。
	MaxImageSize = 32 * 1024 * 1024
	// ThresholdConfidence は閾値モードで一般的に使う信頼度（パーセント）です。
	ThresholdConfidence = 80.0
	// NoDetectionMessageFormat は閾値モードで検出0件の場合に返すメッセージです。
	NoDetectionMessageFormat = "No animals detected with confidence >= %g%%"
)

// Detector は画像から物体を検出する外部推論サービスのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Detector interface {
	// Detect は画像バイト列を推論し、フィルタ前の予測結果を返します。
	Detect(ctx context.Context, imageData []byte) ([]entity.Prediction, error)
}

// UploadStore はアップロード画像をローカルに保存します。
type UploadStore interface {
	// Save は画像を保存し、保存先パスを返します。
	Save(ctx context.Context, imageData []byte) (string, error)
}

// DetectionRecorder は検出結果を記録します（スプレッドシート、DB 履歴など）。
type DetectionRecorder interface {
	Record(ctx context.Context, result *entity.Result) error
}

// Notifier は検出結果を通知します。
type Notifier interface {
	NotifyDetections(ctx context.Context, detections []entity.Detection) error
}

// Policy は検出結果のフィルタ条件です。
type Policy struct {
	// MinConfidence は採用する最低信頼度（パーセント）。0 の場合は許可リストのみで判定し、
	// 検出0件でも空リストを返します。0 より大きい場合は検出0件時にメッセージを返します。
	MinConfidence float64
}

// detectionUsecase は画像アップロードから通知までの一連の処理を提供します。
type detectionUsecase struct {
	detector  Detector
	uploads   UploadStore
	notifier  Notifier
	recorders []DetectionRecorder
	policy    Policy

	now   func() time.Time
	newID func() string
}

// NewDetectionUsecase はdetectionUsecaseの新しいインスタンスを生成します。
// notifier が nil の場合、通知は行いません。
func NewDetectionUsecase(detector Detector, uploads UploadStore, notifier Notifier, policy Policy, recorders ...DetectionRecorder) *detectionUsecase {
	return &detectionUsecase{
		detector:  detector,
		uploads:   uploads,
		notifier:  notifier,
		recorders: recorders,
		policy:    policy,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Predict は画像を保存して推論し、許可リストで絞り込んだ結果を返します。
// 検出が1件以上ある場合は記録と通知を行います。いずれかの段階で失敗した場合はエラーを返します。
func (u *detectionUsecase) Predict(ctx context.Context, imageData []byte) (*entity.Result, error) {
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("%w of %d bytes", ErrImageTooLarge, MaxImageSize)
	}

	path, err := u.uploads.Save(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}

	predictions, err := u.detector.Detect(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	result := &entity.Result{
		RequestID:  u.newID(),
		DetectedAt: u.now(),
		Detections: FilterPredictions(predictions, u.policy.MinConfidence),
	}
	slog.Info("inference completed",
		"request_id", result.RequestID,
		"upload", path,
		"predictions", len(predictions),
		"detections", len(result.Detections),
	)

	if !result.HasDetections() {
		if u.policy.MinConfidence > 0 {
			result.Message = fmt.Sprintf(NoDetectionMessageFormat, u.policy.MinConfidence)
		}
		return result, nil
	}

	for _, r := range u.recorders {
		if err := r.Record(ctx, result); err != nil {
			return nil, fmt.Errorf("failed to record detections: %w", err)
		}
	}

	if u.notifier != nil {
		if err := u.notifier.NotifyDetections(ctx, result.Detections); err != nil {
			return nil, fmt.Errorf("failed to send alert: %w", err)
		}
	}

	return result, nil
}
