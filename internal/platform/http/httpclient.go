// Package http provides the outbound HTTP client shared by the external API adapters.
package http

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

// UserAgent は外部APIへ送信するUser-Agentヘッダーの値です。
const UserAgent = "animal-detector/1.0"

// NewHTTPClient は推論APIなど外部サービス呼び出し用のHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: HTTP_PROXY / HTTPS_PROXY 環境変数を尊重
//   - Dialer.Timeout: TCP接続タイムアウト 5秒
//   - TLSHandshakeTimeout: 5秒
//   - Client.Timeout: リクエスト全体の上限（呼び出し元から渡される。画像アップロードを含むため長め）
//
// http.DefaultClient にはタイムアウトがないため使用しないこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: &loggingTransport{next: t}}
}

// loggingTransport は User-Agent を付与し、外部呼び出しの所要時間を記録します。
type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTripper は元のリクエストを変更してはならない
	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", UserAgent)
	}

	start := time.Now()
	res, err := t.next.RoundTrip(r)
	elapsed := time.Since(start)
	if err != nil {
		slog.Warn("outbound request failed", "method", r.Method, "host", r.URL.Host, "elapsed", elapsed, "error", err)
		return nil, err
	}
	slog.Debug("outbound request", "method", r.Method, "host", r.URL.Host, "status", res.StatusCode, "elapsed", elapsed)
	return res, nil
}
