// Package vision はGoogle Cloud Vision APIの物体検出（Object Localization）を使用したDetectorを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"animal_detector/internal/feature/detection/domain/entity"
	"animal_detector/internal/feature/detection/usecase"
)

// maxResults は1画像あたりに要求する最大検出数です。
const maxResults = 20

// VisionDetector はGoogle Cloud Vision APIで物体を検出します。
type VisionDetector struct {
	client *gvision.ImageAnnotatorClient
}

// VisionDetectorがDetectorを実装していることをコンパイル時に検証します。
var _ usecase.Detector = (*VisionDetector)(nil)

// NewVisionDetector はADCを使用してVisionDetectorの新しいインスタンスを生成します。
func NewVisionDetector(ctx context.Context) (*VisionDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionDetector{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionDetector) Close() error {
	return v.client.Close()
}

// Detect は画像バイト列から物体を検出します。Vision APIのラベル名（例: "Lion"）をそのままクラス名として返します。
func (v *VisionDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Prediction, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_OBJECT_LOCALIZATION, MaxResults: maxResults},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, nil
	}

	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	return toPredictions(resp.Responses[0].LocalizedObjectAnnotations), nil
}

func toPredictions(annotations []*visionpb.LocalizedObjectAnnotation) []entity.Prediction {
	out := make([]entity.Prediction, 0, len(annotations))
	for _, a := range annotations {
		out = append(out, entity.Prediction{
			Class:      a.GetName(),
			Confidence: float64(a.GetScore()),
		})
	}
	return out
}
