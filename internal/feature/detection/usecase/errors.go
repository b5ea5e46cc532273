// Package usecase はdetectionフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrEmptyImage はアップロードされた画像が空の場合に返されます。
	ErrEmptyImage = errors.New("image data is empty")

	// ErrImageTooLarge は画像が MaxImageSize を超える場合に返されます。
	ErrImageTooLarge = errors.New("image size exceeds maximum")

	// ErrSheetUnavailable はスプレッドシートログが無効、または未作成の場合に返されます。
	ErrSheetUnavailable = errors.New("detection sheet is not available")
)
