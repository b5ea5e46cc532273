package usecase

import (
	"strconv"

	"animal_detector/internal/feature/detection/domain/entity"
)

// FilterPredictions は許可リストに含まれ、かつ信頼度（パーセント）が minConfidence 以上の予測のみを返します。
// 信頼度は 0.0~1.0 からパーセントに変換し、小数点以下2桁に丸めた値で比較します。
// 入力の順序は保持されます。
func FilterPredictions(predictions []entity.Prediction, minConfidence float64) []entity.Detection {
	out := make([]entity.Detection, 0, len(predictions))
	for _, p := range predictions {
		if !entity.IsAllowedAnimal(p.Class) {
			continue
		}
		pct := ToPercent(p.Confidence)
		if pct < minConfidence {
			continue
		}
		out = append(out, entity.Detection{Type: p.Class, Confidence: pct})
	}
	return out
}

// ToPercent は 0.0~1.0 のスコアをパーセントに変換し、小数点以下2桁に丸めます。
// 丸めは score*100 の2進値に対して1回だけ行い、ちょうど中間の値は偶数側に寄せます。
func ToPercent(score float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(score*100, 'f', 2, 64), 64)
	return v
}
