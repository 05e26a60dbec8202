package middleware

import (
	"errors"

	"tujitume_backend/internal/auth"
	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/models"
	"tujitume_backend/pkg/apperrors"
	"tujitume_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserEnsurer - get-or-create пользователя по подтвержденной личности
type UserEnsurer interface {
	EnsureUser(db *gorm.DB, identity *auth.Identity) (*models.User, bool, error)
}

// IdentityMiddleware - проверка bearer-токена без обращения к БД
func IdentityMiddleware(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, verifier); !ok {
			return
		}
		c.Next()
	}
}

// AuthMiddleware - проверка токена и get-or-create пользователя.
// Должен идти после DBMiddleware.
func AuthMiddleware(verifier auth.Verifier, users UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := authenticate(c, verifier)
		if !ok {
			return
		}

		val, _ := c.Get(string(contextkeys.DBContextKey))
		db, ok := val.(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errors.New("db is not configured")))
			return
		}

		if _, _, err := users.EnsureUser(db.WithContext(c.Request.Context()), identity); err != nil {
			logger.CtxWithError(c.Request.Context(), "Failed to ensure user", err, "uid", identity.UID)
			apperrors.HandleError(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware - без заголовка запрос идет анонимно,
// а невалидный токен отклоняется так же, как в AuthMiddleware.
func OptionalAuthMiddleware(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if _, ok := authenticate(c, verifier); !ok {
				return
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, verifier auth.Verifier) (*auth.Identity, bool) {
	token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
	if err != nil {
		apperrors.HandleError(c, err)
		return nil, false
	}

	identity, err := verifier.Verify(c.Request.Context(), token)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "Token rejected", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, err)
		return nil, false
	}

	setIdentity(c, identity)
	return identity, true
}

func setIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(contextkeys.IdentityKey, identity)
	c.Set(contextkeys.UserIDKey, identity.UID)
	c.Set(contextkeys.UserNameKey, identity.Name)
	if identity.Email != nil {
		c.Set(contextkeys.UserEmailKey, *identity.Email)
	}

	ctx := logger.WithUserID(c.Request.Context(), identity.UID)
	c.Request = c.Request.WithContext(ctx)
}
