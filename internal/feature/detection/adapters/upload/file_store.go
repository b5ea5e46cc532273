// Package upload はアップロード画像をローカルファイルに保存するUploadStoreを提供します。
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"animal_detector/internal/feature/detection/usecase"
	"animal_detector/internal/platform/env"
)

// DefaultPath はアップロード画像の保存先です。リクエストごとに上書きされます。
const DefaultPath = "temp.jpg"

// FileStore は固定パスに最新のアップロード画像を保存します。
// 書き込みは同じディレクトリの一時ファイルに行った後にリネームするため、読み手が書きかけの画像を見ることはありません。
type FileStore struct {
	path string
}

var _ usecase.UploadStore = (*FileStore)(nil)

// NewFileStore は保存先 path の FileStore を生成します。空の場合は DefaultPath を使用します。
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

// LoadPath は UPLOAD_PATH 環境変数から保存先を読み込みます。
func LoadPath() string {
	return env.String("UPLOAD_PATH", DefaultPath)
}

// Save は画像を保存先に書き込み、そのパスを返します。
func (s *FileStore) Save(ctx context.Context, imageData []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp upload: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(imageData); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close upload: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("rename upload: %w", err)
	}
	return s.path, nil
}
