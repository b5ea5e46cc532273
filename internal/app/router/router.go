package router

import (
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "animal_detector/internal/feature/auth/transport/handler"
	detectionhandler "animal_detector/internal/feature/detection/transport/handler"
	platformhandler "animal_detector/internal/platform/http/handler"
	jwtmw "animal_detector/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Detection *detectionhandler.DetectionHandler
	History   *detectionhandler.HistoryHandler
	Health    map[string]platformhandler.Check
}

// NewRouter はgin.Engineを生成し、全ルートを登録します。
// frontendDir の index.html を GET / で配信します。
func NewRouter(frontendDir string, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	// ブラウザの画面から直接呼ばれるため全オリジンを許可
	r.Use(cors.Default())

	// 認証不要
	index := filepath.Join(frontendDir, "index.html")
	r.GET("/", func(c *gin.Context) {
		c.File(index)
	})
	health := platformhandler.NewHealth(h.Health)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	r.POST("/predict", h.Detection.Predict)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)

	// 認証必須のルート
	v1 := r.Group("/v1")
	v1.Use(jwtmw.AuthRequired())
	{
		v1.GET("/detections", h.History.List)
		v1.GET("/detections/sheet", h.History.DownloadSheet)
	}

	return r
}
