// Package history はgormを使用した検出履歴リポジトリを提供します。
package history

import (
	"context"
	"time"

	"gorm.io/gorm"

	"animal_detector/internal/feature/detection/domain/entity"
	"animal_detector/internal/feature/detection/usecase"
)

// DetectionModel は detections テーブルの1行です。
type DetectionModel struct {
	ID         uint      `gorm:"primaryKey"`
	RequestID  string    `gorm:"size:36;not null;index"`
	Animal     string    `gorm:"size:64;not null;index"`
	Confidence float64   `gorm:"not null"`
	DetectedAt time.Time `gorm:"not null;index"`
}

// TableName はgormが使うテーブル名を固定します。
func (DetectionModel) TableName() string {
	return "detections"
}

type detectionGorm struct {
	db *gorm.DB
}

var (
	_ usecase.DetectionRecorder = (*detectionGorm)(nil)
	_ usecase.HistoryRepository = (*detectionGorm)(nil)
)

// NewDetectionRepository はgormを使った検出履歴リポジトリを生成します。
// 検出の記録（DetectionRecorder）と履歴参照（HistoryRepository）の両方を実装します。
func NewDetectionRepository(db *gorm.DB) *detectionGorm {
	return &detectionGorm{db: db}
}

// Record は検出1件につき1行を挿入します。
func (r *detectionGorm) Record(ctx context.Context, result *entity.Result) error {
	if !result.HasDetections() {
		return nil
	}
	ms := make([]DetectionModel, 0, len(result.Detections))
	for _, d := range result.Detections {
		ms = append(ms, DetectionModel{
			RequestID:  result.RequestID,
			Animal:     d.Type,
			Confidence: d.Confidence,
			DetectedAt: result.DetectedAt,
		})
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

// ListRecent は新しい順に最大 limit 件を返します。
func (r *detectionGorm) ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
	var rows []DetectionModel
	q := r.db.WithContext(ctx).Order("detected_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.DetectionRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.DetectionRecord{
			ID:         m.ID,
			RequestID:  m.RequestID,
			Animal:     m.Animal,
			Confidence: m.Confidence,
			DetectedAt: m.DetectedAt,
		})
	}
	return out, nil
}
