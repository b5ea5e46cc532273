package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"animal_detector/internal/feature/auth/domain/entity"
)

// dummyHash はオペレーター未検出時にもbcrypt比較を行うためのダミーハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// OperatorRepository はオペレーターアカウントの取得を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type OperatorRepository interface {
	// FindByEmail は一致するオペレーターを返します。存在しない場合は ErrOperatorNotFound です。
	FindByEmail(ctx context.Context, email string) (*entity.Operator, error)
}

// TokenGenerator は署名済みトークンを生成します。
type TokenGenerator interface {
	GenerateToken(subject string) (string, error)
}

// authUsecase はオペレーター認証を実装します。
type authUsecase struct {
	operators OperatorRepository
	tokens    TokenGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(operators OperatorRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{operators: operators, tokens: tokens}
}

// Login はオペレーターを認証し、成功時にトークンを返します。
// タイミング攻撃を防止するため、オペレーターが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	op, err := u.operators.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = op.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(op.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
