package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"tujitume_backend/internal/config"
	"tujitume_backend/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	defaultCertsTTL      = time.Hour
	// не чаще раза в минуту перечитываем сертификаты из-за неизвестного kid
	defaultMinRefreshGap = time.Minute
)

// FirebaseVerifier проверяет ID-токены Firebase: RS256, подпись по
// публичным сертификатам Google, iss/aud по project id.
type FirebaseVerifier struct {
	projectID      string
	certsURL       string
	client         *http.Client
	minRefreshGap  time.Duration
	refreshFlights singleflight.Group

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
	fetchedAt time.Time
}

func NewFirebaseVerifier(cfg config.AuthConfig) (*FirebaseVerifier, error) {
	projectID, err := resolveProjectID(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.FirebaseCertsURL == "" {
		return nil, errors.New("firebase certs url is required")
	}
	return &FirebaseVerifier{
		projectID:     projectID,
		certsURL:      cfg.FirebaseCertsURL,
		client:        &http.Client{Timeout: 10 * time.Second},
		minRefreshGap: defaultMinRefreshGap,
	}, nil
}

// resolveProjectID - project id из конфигурации или из service account
func resolveProjectID(cfg config.AuthConfig) (string, error) {
	if cfg.FirebaseProjectID != "" {
		return cfg.FirebaseProjectID, nil
	}

	raw := []byte(cfg.FirebaseServiceAccountJSON)
	if len(raw) == 0 && cfg.FirebaseServiceAccountPath != "" {
		data, err := os.ReadFile(cfg.FirebaseServiceAccountPath)
		if err != nil {
			return "", fmt.Errorf("failed to read firebase service account: %w", err)
		}
		raw = data
	}
	if len(raw) == 0 {
		return "", errors.New("firebase project id or service account is required")
	}

	var account struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(raw, &account); err != nil {
		return "", fmt.Errorf("failed to parse firebase service account: %w", err)
	}
	if account.ProjectID == "" {
		return "", errors.New("firebase service account has no project_id")
	}
	return account.ProjectID, nil
}

func (v *FirebaseVerifier) ProjectID() string {
	return v.projectID
}

func (v *FirebaseVerifier) Verify(ctx context.Context, tokenStr string) (*Identity, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("%w: token has no kid header", jwt.ErrTokenUnverifiable)
		}
		return v.publicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(firebaseIssuerPrefix+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return nil, mapParseError(err)
	}
	return identityFromClaims(claims)
}

// publicKey возвращает ключ по kid. Кэш обновляется по истечении max-age,
// а неизвестный kid при свежем кэше вызывает не больше одного запроса
// за minRefreshGap. Параллельные обновления схлопываются в один запрос.
func (v *FirebaseVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	key, ok, throttled := v.cachedKey(kid)
	if ok {
		return key, nil
	}
	if throttled {
		return nil, unknownKeyError(kid)
	}

	_, err, _ := v.refreshFlights.Do("certs", func() (interface{}, error) {
		if _, ok, throttled := v.cachedKey(kid); ok || throttled {
			return nil, nil
		}
		return nil, v.refreshKeys(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	if key, ok, _ := v.cachedKey(kid); ok {
		return key, nil
	}
	return nil, unknownKeyError(kid)
}

// cachedKey: ok - ключ есть и кэш свежий, throttled - кэш свежий и
// обновлялся недавно, повторный запрос не нужен.
func (v *FirebaseVerifier) cachedKey(kid string) (key *rsa.PublicKey, ok, throttled bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	now := time.Now()
	fresh := now.Before(v.expiresAt)
	key, found := v.keys[kid]
	if found && fresh {
		return key, true, false
	}
	return nil, false, fresh && now.Sub(v.fetchedAt) < v.minRefreshGap
}

func unknownKeyError(kid string) error {
	return fmt.Errorf("%w: unknown key id %q", jwt.ErrTokenUnverifiable, kid)
}

func (v *FirebaseVerifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build certs request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to fetch firebase certificates", err)
		return fmt.Errorf("failed to fetch firebase certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("firebase certificates endpoint returned %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("failed to decode firebase certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
		if err != nil {
			logger.CtxWarn(ctx, "Skipping invalid firebase certificate", "kid", kid, "error", err)
			continue
		}
		keys[kid] = key
	}

	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = time.Now()
	v.expiresAt = v.fetchedAt.Add(cacheMaxAge(resp.Header.Get("Cache-Control")))
	v.mu.Unlock()

	logger.CtxDebug(ctx, "Firebase certificates refreshed", "keys", len(keys))
	return nil
}

// cacheMaxAge разбирает max-age из Cache-Control
func cacheMaxAge(header string) time.Duration {
	for _, directive := range strings.Split(header, ",") {
		directive = strings.TrimSpace(directive)
		if !strings.HasPrefix(directive, "max-age=") {
			continue
		}
		seconds, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age="))
		if err != nil || seconds <= 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}
	return defaultCertsTTL
}
