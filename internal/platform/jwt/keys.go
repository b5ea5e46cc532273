package jwtmw

const (
	// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"
	// ContextSubject is the gin context key under which the token subject is stored.
	ContextSubject = "subject"
)
