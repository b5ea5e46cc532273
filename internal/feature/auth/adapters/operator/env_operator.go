// Package operator は環境変数で設定された単一のオペレーターアカウントを提供します。
package operator

import (
	"context"
	"strings"

	"animal_detector/internal/feature/auth/domain/entity"
	"animal_detector/internal/feature/auth/usecase"
	"animal_detector/internal/platform/env"
)

// StaticRepository は1件のオペレーターだけを保持します。
type StaticRepository struct {
	op *entity.Operator
}

var _ usecase.OperatorRepository = (*StaticRepository)(nil)

// NewStaticRepository はStaticRepositoryを生成します。emailかhashが空なら誰もログインできません。
func NewStaticRepository(email, passwordHash string) *StaticRepository {
	if email == "" || passwordHash == "" {
		return &StaticRepository{}
	}
	return &StaticRepository{op: &entity.Operator{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
	}}
}

// LoadFromEnv は OPERATOR_EMAIL と OPERATOR_PASSWORD_HASH から生成します。
func LoadFromEnv() *StaticRepository {
	return NewStaticRepository(env.String("OPERATOR_EMAIL", ""), env.String("OPERATOR_PASSWORD_HASH", ""))
}

// Configured はオペレーターが設定されているかを返します。
func (r *StaticRepository) Configured() bool {
	return r.op != nil
}

// FindByEmail はメールアドレスを大文字小文字を区別せずに照合します。
func (r *StaticRepository) FindByEmail(_ context.Context, email string) (*entity.Operator, error) {
	if r.op == nil || strings.ToLower(strings.TrimSpace(email)) != r.op.Email {
		return nil, usecase.ErrOperatorNotFound
	}
	op := *r.op
	return &op, nil
}
