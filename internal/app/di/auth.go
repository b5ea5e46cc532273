package di

import (
	"log/slog"
	"os"
	"time"

	"animal_detector/internal/feature/auth/adapters/operator"
	authhandler "animal_detector/internal/feature/auth/transport/handler"
	authusecase "animal_detector/internal/feature/auth/usecase"
	jwtmw "animal_detector/internal/platform/jwt"
)

// TokenTTL is the lifetime of operator tokens.
const TokenTTL = 24 * time.Hour

// NewAuthUsecase wires the env-configured operator account with the JWT generator.
func NewAuthUsecase() authhandler.AuthUsecase {
	operators := operator.LoadFromEnv()
	if !operators.Configured() {
		slog.Warn("OPERATOR_EMAIL or OPERATOR_PASSWORD_HASH is not set; operator login disabled")
	}
	gen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), TokenTTL)
	return authusecase.NewAuthUsecase(operators, gen)
}
