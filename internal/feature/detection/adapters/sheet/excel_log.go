// Package sheet はExcelファイルに検出結果を追記するDetectionRecorderを提供します。
package sheet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"animal_detector/internal/feature/detection/domain/entity"
	"animal_detector/internal/feature/detection/usecase"
	"animal_detector/internal/platform/env"
)

// Header はシート1行目の列名です。
var Header = []string{"Animal", "Confidence", "Date", "Time"}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// ExcelLog は検出結果を .xlsx ファイルに追記します。
// ファイルは記録のたびに読み込み・行追加・全体の書き直しを行います。
// 同一プロセス内の書き込みは mu で直列化されますが、複数プロセスからの同時書き込みはサポートしません。
type ExcelLog struct {
	path string
	mu   sync.Mutex
}

var _ usecase.DetectionRecorder = (*ExcelLog)(nil)

// NewExcelLog は path に記録するExcelLogを生成します。
func NewExcelLog(path string) *ExcelLog {
	return &ExcelLog{path: path}
}

// LoadPath は DETECTION_SHEET_PATH 環境変数を返します。空の場合は記録しません。
func LoadPath() string {
	return env.String("DETECTION_SHEET_PATH", "")
}

// Path は記録先のファイルパスを返します。
func (l *ExcelLog) Path() string {
	return l.path
}

// Record は検出1件につき1行を追記します。ファイルが存在しない場合はヘッダー付きで新規作成します。
func (l *ExcelLog) Record(ctx context.Context, result *entity.Result) error {
	if !result.HasDetections() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("read sheet rows: %w", err)
	}

	next := len(rows) + 1
	if len(rows) == 0 {
		if err := setRow(f, sheetName, 1, toCells(Header)); err != nil {
			return err
		}
		next = 2
	}

	date := result.DetectedAt.Format(dateLayout)
	clock := result.DetectedAt.Format(timeLayout)
	for i, d := range result.Detections {
		if err := setRow(f, sheetName, next+i, []interface{}{d.Type, d.Confidence, date, clock}); err != nil {
			return err
		}
	}

	return l.save(f)
}

// open は既存ファイルを開くか、存在しない場合は新しいブックを作成します。
func (l *ExcelLog) open() (*excelize.File, error) {
	if _, err := os.Stat(l.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return excelize.NewFile(), nil
		}
		return nil, fmt.Errorf("stat sheet: %w", err)
	}
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	return f, nil
}

// save は一時ファイルに書き出してからリネームします。
func (l *ExcelLog) save(f *excelize.File) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sheet dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp sheet: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write sheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close sheet: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename sheet: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheetName string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
