package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"animal_detector/internal/feature/detection/domain/entity"
)

const (
	// DefaultHistoryLimit は履歴取得のデフォルト件数です。
	DefaultHistoryLimit = 50
	// MaxHistoryLimit は履歴取得の最大件数です。
	MaxHistoryLimit = 500
)

// HistoryRepository は検出履歴の読み取りレイヤーを抽象化します。
type HistoryRepository interface {
	ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error)
}

// historyUsecase は検出履歴の参照を提供します。
type historyUsecase struct {
	repo      HistoryRepository
	sheetPath string
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
// repo が nil の場合は常に空の履歴を返し、sheetPath が空の場合はスプレッドシートを提供しません。
func NewHistoryUsecase(repo HistoryRepository, sheetPath string) *historyUsecase {
	return &historyUsecase{repo: repo, sheetPath: sheetPath}
}

// ListRecent は新しい順に最大 limit 件の検出履歴を返します。
func (u *historyUsecase) ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if u.repo == nil {
		return []entity.DetectionRecord{}, nil
	}
	records, err := u.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list detections: %w", err)
	}
	return records, nil
}

// SheetFile はスプレッドシートログのパスを返します。
func (u *historyUsecase) SheetFile(ctx context.Context) (string, error) {
	if u.sheetPath == "" {
		return "", ErrSheetUnavailable
	}
	if _, err := os.Stat(u.sheetPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrSheetUnavailable
		}
		return "", err
	}
	return u.sheetPath, nil
}
