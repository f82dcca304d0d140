package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"finhealth/internal/service"
)

func echoSession(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(GetSessionID(r.Context())))
}

func TestRequireSession(t *testing.T) {
	auth := service.NewAuthService("admin", "pw", "secret", time.Hour)
	mw := NewAuthMiddleware(auth)
	h := mw.RequireSession(http.HandlerFunc(echoSession))

	token, err := auth.GenerateSessionToken("sess-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		header string
		code   int
		body   string
	}{
		{"bearer header", "/", "Bearer " + token, http.StatusOK, "sess-1"},
		{"query param", "/?token=" + token, "", http.StatusOK, "sess-1"},
		{"missing", "/", "", http.StatusUnauthorized, ""},
		{"garbage", "/", "Bearer nope", http.StatusUnauthorized, ""},
		{"wrong scheme", "/", "Basic " + token, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRequireAdminRejectsSessionToken(t *testing.T) {
	auth := service.NewAuthService("admin", "pw", "secret", time.Hour)
	mw := NewAuthMiddleware(auth)
	h := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetAdminID(r.Context())))
	}))

	sessionToken, err := auth.GenerateSessionToken("sess-1")
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login, err := auth.Login("admin", "pw")
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, login.AdminID, rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/fine", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "/boom", entries[1].ContextMap()["path"])
	assert.Equal(t, int64(http.StatusInternalServerError), entries[1].ContextMap()["status"])
}

func TestChatMiddleware(t *testing.T) {
	auth := service.NewAuthService("admin", "pw", "secret", time.Hour)
	mw := NewAuthMiddleware(auth)
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetChatID(r.Context())))
	})

	chatToken, err := auth.GenerateChatToken("chat-7")
	require.NoError(t, err)
	sessionToken, err := auth.GenerateSessionToken("sess-1")
	require.NoError(t, err)

	serve := func(h http.Handler, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	required := mw.RequireChat(echo)
	assert.Equal(t, http.StatusUnauthorized, serve(required, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(required, sessionToken).Code)
	rec := serve(required, chatToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chat-7", rec.Body.String())

	optional := mw.OptionalChat(echo)
	rec = serve(optional, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, http.StatusUnauthorized, serve(optional, "forged").Code)
	assert.Equal(t, "chat-7", serve(optional, chatToken).Body.String())
}
