// Package entity はdetectionフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Prediction は推論サービスが返したフィルタ前の予測結果です。
type Prediction struct {
	Class      string  // モデルが付与したクラス名
	Confidence float64 // 信頼度スコア（0.0 ~ 1.0）
}

// Detection は許可リストと閾値で絞り込まれた検出結果です。
type Detection struct {
	Type       string  // 動物の種類（許可リストのいずれか）
	Confidence float64 // 信頼度（パーセント、小数点以下2桁に丸め）
}

// Result は1回の推論リクエストの結果です。
type Result struct {
	RequestID  string
	DetectedAt time.Time
	Detections []Detection
	// Message は閾値モードで検出が0件だった場合にのみ設定されます。
	Message string
}

// HasDetections は検出が1件以上あるかを返します。
func (r *Result) HasDetections() bool {
	return r != nil && len(r.Detections) > 0
}

// DetectionRecord は履歴として永続化された検出1件です。
type DetectionRecord struct {
	ID         uint
	RequestID  string
	Animal     string
	Confidence float64
	DetectedAt time.Time
}
