package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal_detector/internal/feature/detection/domain/entity"
	"animal_detector/internal/feature/detection/usecase"
)

type mockHistoryRepository struct {
	ListRecentFunc func(ctx context.Context, limit int) ([]entity.DetectionRecord, error)
	gotLimit       int
}

func (m *mockHistoryRepository) ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
	m.gotLimit = limit
	return m.ListRecentFunc(ctx, limit)
}

func TestHistoryUsecase_ListRecent_Limits(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero uses default", 0, usecase.DefaultHistoryLimit},
		{"negative uses default", -5, usecase.DefaultHistoryLimit},
		{"within range kept", 20, 20},
		{"too large clamped", 10000, usecase.MaxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockHistoryRepository{
				ListRecentFunc: func(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
					return []entity.DetectionRecord{{ID: 1, Animal: "Lion", Confidence: 91, DetectedAt: time.Now()}}, nil
				},
			}
			uc := usecase.NewHistoryUsecase(repo, "")

			records, err := uc.ListRecent(context.Background(), tt.limit)

			require.NoError(t, err)
			assert.Len(t, records, 1)
			assert.Equal(t, tt.wantLimit, repo.gotLimit)
		})
	}
}

func TestHistoryUsecase_ListRecent_RepositoryError(t *testing.T) {
	repo := &mockHistoryRepository{
		ListRecentFunc: func(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
			return nil, errors.New("db down")
		},
	}
	uc := usecase.NewHistoryUsecase(repo, "")

	_, err := uc.ListRecent(context.Background(), 10)

	assert.ErrorContains(t, err, "db down")
}

func TestHistoryUsecase_ListRecent_NoRepository(t *testing.T) {
	uc := usecase.NewHistoryUsecase(nil, "")

	records, err := uc.ListRecent(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestHistoryUsecase_SheetFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "detections.xlsx")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"disabled", "", usecase.ErrSheetUnavailable},
		{"not yet created", filepath.Join(dir, "missing.xlsx"), usecase.ErrSheetUnavailable},
		{"exists", existing, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewHistoryUsecase(nil, tt.path)

			path, err := uc.SheetFile(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path, path)
		})
	}
}
