// Package entity はalertフィーチャーのドメインモデルを定義します。
package entity

// Message は送信する通知メールの内容です。
type Message struct {
	Subject  string
	TextBody string
}
