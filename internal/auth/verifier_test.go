package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tujitume_backend/internal/config"
	"tujitume_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = "tujitume-test"

func TestExtractBearer(t *testing.T) {
	token, err := ExtractBearer("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearer("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "abc"} {
		_, err := ExtractBearer(header)
		assert.ErrorIs(t, err, apperrors.ErrMissingToken, header)
	}
}

func TestHMACVerifier(t *testing.T) {
	v, err := NewHMACVerifier("secret", "")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		token, err := v.IssueToken("uid-1", "a@example.com", "Alice", time.Hour)
		require.NoError(t, err)

		identity, err := v.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "uid-1", identity.UID)
		require.NotNil(t, identity.Email)
		assert.Equal(t, "a@example.com", *identity.Email)
		assert.Equal(t, "Alice", identity.Name)
	})

	t.Run("no email", func(t *testing.T) {
		token, err := v.IssueToken("uid-2", "", "", time.Hour)
		require.NoError(t, err)

		identity, err := v.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Nil(t, identity.Email)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := v.IssueToken("uid-1", "", "", -time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewHMACVerifier("other", "")
		require.NoError(t, err)
		token, err := other.IssueToken("uid-1", "", "", time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := v.IssueToken("", "", "", time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrCredentialsNotValidated)
	})

	t.Run("errors are unauthenticated", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "x.y.z")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.KindUnauthenticated, appErr.Kind())
		assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
	})
}

func TestNewHMACVerifier_RequiresSecret(t *testing.T) {
	_, err := NewHMACVerifier("", "")
	assert.Error(t, err)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(config.AuthConfig{Provider: "ldap"})
	assert.Error(t, err)
}

// --- Firebase ---

type certServer struct {
	*httptest.Server
	hits  atomic.Int32
	certs atomic.Pointer[map[string]string]
}

func newCertServer(t *testing.T, certs map[string]string) *certServer {
	t.Helper()
	s := &certServer{}
	s.setCerts(certs)
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		_ = json.NewEncoder(w).Encode(*s.certs.Load())
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *certServer) setCerts(certs map[string]string) {
	s.certs.Store(&certs)
}

func newTestFirebaseVerifier(t *testing.T, certsURL string) *FirebaseVerifier {
	t.Helper()
	v, err := NewFirebaseVerifier(config.AuthConfig{
		FirebaseProjectID: testProject,
		FirebaseCertsURL:  certsURL,
	})
	require.NoError(t, err)
	return v
}

func selfSignedCert(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken.system.gserviceaccount.com"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

func signFirebaseToken(t *testing.T, key *rsa.PrivateKey, kid string, mutate func(*tokenClaims)) string {
	t.Helper()
	now := time.Now()
	claims := &tokenClaims{
		Email: "bob@example.com",
		Name:  "Bob",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "firebase-uid",
			Issuer:    firebaseIssuerPrefix + testProject,
			Audience:  jwt.ClaimStrings{testProject},
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestFirebaseVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newCertServer(t, map[string]string{"kid-1": selfSignedCert(t, key)})
	v := newTestFirebaseVerifier(t, server.URL)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		identity, err := v.Verify(ctx, signFirebaseToken(t, key, "kid-1", nil))
		require.NoError(t, err)
		assert.Equal(t, "firebase-uid", identity.UID)
		assert.Equal(t, "Bob", identity.Name)
		require.NotNil(t, identity.Email)
		assert.Equal(t, "bob@example.com", *identity.Email)
	})

	t.Run("certificates are cached", func(t *testing.T) {
		before := server.hits.Load()
		_, err := v.Verify(ctx, signFirebaseToken(t, key, "kid-1", nil))
		require.NoError(t, err)
		assert.Equal(t, before, server.hits.Load())
	})

	t.Run("wrong audience", func(t *testing.T) {
		token := signFirebaseToken(t, key, "kid-1", func(c *tokenClaims) {
			c.Audience = jwt.ClaimStrings{"other-project"}
		})
		_, err := v.Verify(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrCredentialsNotValidated)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := signFirebaseToken(t, key, "kid-1", func(c *tokenClaims) {
			c.Issuer = "https://evil.example.com"
		})
		_, err := v.Verify(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrCredentialsNotValidated)
	})

	t.Run("expired", func(t *testing.T) {
		token := signFirebaseToken(t, key, "kid-1", func(c *tokenClaims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		})
		_, err := v.Verify(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("unknown kid", func(t *testing.T) {
		_, err := v.Verify(ctx, signFirebaseToken(t, key, "kid-404", nil))
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("foreign signing key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, err = v.Verify(ctx, signFirebaseToken(t, other, "kid-1", nil))
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("hs256 is refused", func(t *testing.T) {
		hmacVerifier, err := NewHMACVerifier("secret", firebaseIssuerPrefix+testProject)
		require.NoError(t, err)
		token, err := hmacVerifier.IssueToken("uid", "", "", time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)
		assert.Error(t, err)
	})
}

func TestFirebaseVerifier_UnknownKidDoesNotRefetch(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newCertServer(t, map[string]string{"kid-1": selfSignedCert(t, key)})
	v := newTestFirebaseVerifier(t, server.URL)
	ctx := context.Background()

	_, err = v.Verify(ctx, signFirebaseToken(t, key, "kid-1", nil))
	require.NoError(t, err)
	require.Equal(t, int32(1), server.hits.Load())

	for i := 0; i < 50; i++ {
		_, err := v.Verify(ctx, signFirebaseToken(t, key, fmt.Sprintf("forged-%d", i), nil))
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}
	assert.Equal(t, int32(1), server.hits.Load())
}

func TestFirebaseVerifier_KeyRotation(t *testing.T) {
	oldKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	newKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	server := newCertServer(t, map[string]string{"kid-1": selfSignedCert(t, oldKey)})
	v := newTestFirebaseVerifier(t, server.URL)
	v.minRefreshGap = 0
	ctx := context.Background()

	_, err = v.Verify(ctx, signFirebaseToken(t, oldKey, "kid-1", nil))
	require.NoError(t, err)

	server.setCerts(map[string]string{
		"kid-1": selfSignedCert(t, oldKey),
		"kid-2": selfSignedCert(t, newKey),
	})

	identity, err := v.Verify(ctx, signFirebaseToken(t, newKey, "kid-2", nil))
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid", identity.UID)
	assert.Equal(t, int32(2), server.hits.Load())
}

func TestFirebaseVerifier_ConcurrentColdStart(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newCertServer(t, map[string]string{"kid-1": selfSignedCert(t, key)})
	v := newTestFirebaseVerifier(t, server.URL)
	token := signFirebaseToken(t, key, "kid-1", nil)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := v.Verify(context.Background(), token)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), server.hits.Load())
}

func TestResolveProjectID(t *testing.T) {
	id, err := resolveProjectID(config.AuthConfig{FirebaseProjectID: "explicit"})
	require.NoError(t, err)
	assert.Equal(t, "explicit", id)

	id, err = resolveProjectID(config.AuthConfig{FirebaseServiceAccountJSON: `{"project_id":"from-json"}`})
	require.NoError(t, err)
	assert.Equal(t, "from-json", id)

	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account","project_id":"from-file"}`), 0o600))
	id, err = resolveProjectID(config.AuthConfig{FirebaseServiceAccountPath: path})
	require.NoError(t, err)
	assert.Equal(t, "from-file", id)

	_, err = resolveProjectID(config.AuthConfig{})
	assert.Error(t, err)

	_, err = resolveProjectID(config.AuthConfig{FirebaseServiceAccountJSON: `{}`})
	assert.Error(t, err)
}

func TestCacheMaxAge(t *testing.T) {
	assert.Equal(t, 19*time.Minute, cacheMaxAge("public, max-age=1140, must-revalidate, no-transform"))
	assert.Equal(t, defaultCertsTTL, cacheMaxAge(""))
	assert.Equal(t, defaultCertsTTL, cacheMaxAge("max-age=abc"))
}

func TestInit_Once(t *testing.T) {
	first, err := Init(config.AuthConfig{Provider: ProviderHMAC, JWTSecret: "one"})
	require.NoError(t, err)

	second, err := Init(config.AuthConfig{Provider: ProviderHMAC, JWTSecret: "two"})
	require.NoError(t, err)

	assert.Same(t, first, second)
}
