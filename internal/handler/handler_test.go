package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/config"
	"github.com/teenbudget/backend/internal/middleware"
)

func testHandler() *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	// requests in these tests are rejected before the service is reached
	return NewHandler(nil, log)
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestSignupValidation(t *testing.T) {
	h := testHandler()

	cases := map[string]string{
		"not json":       `{"name": `,
		"missing email":  `{"name": "Alex", "password": "hunter22"}`,
		"bad email":      `{"name": "Alex", "email": "nope", "password": "hunter22"}`,
		"short password": `{"name": "Alex", "email": "a@b.c", "password": "short"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postJSON(t, h.Signup, body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "error") {
				t.Errorf("body lacks error field: %s", rec.Body.String())
			}
		})
	}
}

func TestCreateTransactionRejectsBadDate(t *testing.T) {
	h := testHandler()

	rec := postJSON(t, h.CreateTransaction,
		`{"type": "expense", "amount": "10", "category": "Food", "date": "03/02/2024"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "YYYY-MM-DD") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestCreateTransactionRejectsBadType(t *testing.T) {
	h := testHandler()

	rec := postJSON(t, h.CreateTransaction,
		`{"type": "transfer", "amount": "10", "category": "Food", "date": "2024-03-02"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReportRangeValidation(t *testing.T) {
	h := testHandler()

	rec := postJSON(t, h.PDFReport, `{"from": "2024-03-10", "to": "2024-03-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value("userID").(string)
		w.WriteHeader(http.StatusOK)
	})
	protected := middleware.AuthMiddleware(cfg)(next)

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "55", "other-secret")
		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, "55", "test-secret")
		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotUserID != "55" {
			t.Errorf("context userID = %q, want 55", gotUserID)
		}
	})
}

func signToken(t *testing.T, subject, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	wrapped := middleware.RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}
