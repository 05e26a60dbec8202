// Package auth проверяет ID-токены внешнего провайдера личности и
// возвращает подтвержденную личность вызывающего.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tujitume_backend/internal/config"
	"tujitume_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ProviderFirebase = "firebase"
	ProviderHMAC     = "hmac"

	maxUIDLength = 128
)

// Identity - подтвержденная личность из токена
type Identity struct {
	UID   string
	Email *string
	Name  string
}

// Verifier проверяет bearer-токен. Ошибки - *apperrors.AppError вида Unauthenticated.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// tokenClaims - общие поля ID-токена Firebase и локального HS256 токена
type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var (
	initOnce     sync.Once
	initVerifier Verifier
	initErr      error
)

// Init создает верификатор процесса ровно один раз. Повторные вызовы
// возвращают результат первого, даже если конфигурация отличается.
func Init(cfg config.AuthConfig) (Verifier, error) {
	initOnce.Do(func() {
		initVerifier, initErr = New(cfg)
	})
	return initVerifier, initErr
}

// New создает верификатор по конфигурации без кэширования
func New(cfg config.AuthConfig) (Verifier, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderFirebase, "":
		return NewFirebaseVerifier(cfg)
	case ProviderHMAC:
		return NewHMACVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

// ExtractBearer достает токен из заголовка Authorization
func ExtractBearer(header string) (string, error) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", apperrors.ErrMissingToken
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", apperrors.ErrMissingToken
	}
	return token, nil
}

// identityFromClaims проверяет subject и собирает Identity
func identityFromClaims(claims *tokenClaims) (*Identity, error) {
	uid := claims.Subject
	if uid == "" || len(uid) > maxUIDLength {
		return nil, apperrors.ErrCredentialsNotValidated
	}

	identity := &Identity{UID: uid, Name: claims.Name}
	if claims.Email != "" {
		email := claims.Email
		identity.Email = &email
	}
	return identity, nil
}

// mapParseError переводит ошибки golang-jwt в ошибки приложения
func mapParseError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.ErrTokenExpired.WithError(err)
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.ErrInvalidToken.WithError(err)
	default:
		return apperrors.ErrCredentialsNotValidated.WithError(err)
	}
}
