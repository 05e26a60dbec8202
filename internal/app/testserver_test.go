package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"tujitume_backend/database"
	"tujitume_backend/internal/auth"
	"tujitume_backend/internal/config"
	"tujitume_backend/internal/email"
	"tujitume_backend/internal/services"
	"tujitume_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	testDB     *gorm.DB
	testDBErr  error
	testDBOnce sync.Once
)

// TestServer - роутер приложения поверх тестовой БД. Каждый запрос
// выполняется в транзакции теста, которая откатывается в Cleanup.
type TestServer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	Tx       *gorm.DB
	Verifier *auth.HMACVerifier
	Mail     *email.NoopProvider
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.Connect(config.DatabaseConfig{
			DSN:                    dsn,
			MaxOpenConns:           10,
			MaxIdleConns:           2,
			ConnMaxLifetimeMinutes: 5,
		}, false)
		if testDBErr == nil {
			testDBErr = database.AutoMigrate(testDB)
		}
	})
	require.NoError(t, testDBErr)
	return testDB
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := openTestDB(t)
	verifier, err := auth.NewHMACVerifier("integration-secret", "")
	require.NoError(t, err)

	mail := email.NewNoopProvider()
	container := services.NewServiceContainer(mail)

	tx := db.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		container.Notifier.Wait()
		tx.Rollback()
	})

	return &TestServer{
		Router:   SetupRouter(db, verifier, container),
		DB:       db,
		Tx:       tx,
		Verifier: verifier,
		Mail:     mail,
	}
}

// NewUserToken выпускает токен для нового uid; запись пользователя
// появится при первом запросе через AuthMiddleware.
func (ts *TestServer) NewUserToken(t *testing.T, name string) (string, string) {
	t.Helper()
	uid := "uid-" + uuid.NewString()
	token, err := ts.Verifier.IssueToken(uid, uid+"@test.local", name, time.Hour)
	require.NoError(t, err)
	return token, uid
}

// SendRequest выполняет запрос внутри транзакции теста
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(context.WithValue(req.Context(), contextkeys.DBContextKey, ts.Tx))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w.Code, decoded
}

// SendRequestList - то же для ответов-массивов
func (ts *TestServer) SendRequestList(t *testing.T, method, path, token string) (int, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(context.WithValue(req.Context(), contextkeys.DBContextKey, ts.Tx))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	var decoded []map[string]interface{}
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w.Code, decoded
}

func errorCodeOf(resp map[string]interface{}) string {
	errObj, _ := resp["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}
