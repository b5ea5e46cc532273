// Package entity はauthフィーチャーのドメインモデルを定義します。
package entity

// Operator は検出履歴を閲覧できるオペレーターアカウントです。
type Operator struct {
	Email        string
	PasswordHash string
}
