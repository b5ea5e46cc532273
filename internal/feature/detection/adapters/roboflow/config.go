// Package roboflow はRoboflow Workflow APIを使用した物体検出クライアントを提供します。
package roboflow

import (
	"time"

	"animal_detector/internal/platform/env"
)

// DefaultAPIURL はRoboflowのホスト型推論エンドポイントです。
const DefaultAPIURL = "https://detect.roboflow.com"

// Config はRoboflow APIクライアントの設定です。
type Config struct {
	APIURL    string        // ベースURL
	APIKey    string        // 認証用APIキー
	Workspace string        // ワークスペース名
	Workflow  string        // ワークフローID
	UseCache  bool          // Roboflow側のワークフロー定義キャッシュを使うか
	Timeout   time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からRoboflowの設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIURL:    env.String("ROBOFLOW_API_URL", DefaultAPIURL),
		APIKey:    env.String("ROBOFLOW_API_KEY", ""),
		Workspace: env.String("ROBOFLOW_WORKSPACE", ""),
		Workflow:  env.String("ROBOFLOW_WORKFLOW", ""),
		UseCache:  env.Bool("ROBOFLOW_USE_CACHE", true),
		Timeout:   env.Duration("INFERENCE_TIMEOUT", 30*time.Second),
	}
}
