package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrewpaige1/kanadeck-api/auth"
	"github.com/andrewpaige1/kanadeck-api/config"
	"github.com/andrewpaige1/kanadeck-api/models"
)

var testEnv = config.Environment{
	JWTSecret:   "test-secret",
	JWTIssuer:   "kanadeck",
	JWTAudience: "kanadeck-api",
}

func TestSyncUserMiddleware(t *testing.T) {
	dsn := fmt.Sprintf("file:middleware_%p?mode=memory&cache=shared", t)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatal(err)
	}

	validate, err := EnsureValidToken(testEnv)
	if err != nil {
		t.Fatalf("EnsureValidToken() error = %v", err)
	}

	var seen *models.User
	handler := validate(SyncUserMiddleware(db, func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(nickname string, viaCookie bool) int {
		token, err := auth.CreateToken(testEnv, "auth0|123", nickname, time.Hour)
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest("GET", "/", nil)
		if viaCookie {
			req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
		} else {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := call("kana-fan", false); code != http.StatusNoContent {
		t.Fatalf("first request status = %d", code)
	}
	if seen == nil || seen.Auth0ID != "auth0|123" || seen.Nickname != "kana-fan" {
		t.Fatalf("user in context = %+v", seen)
	}
	firstID := seen.ID

	if code := call("renamed", true); code != http.StatusNoContent {
		t.Fatalf("cookie request status = %d", code)
	}
	if seen.ID != firstID || seen.Nickname != "renamed" {
		t.Errorf("user after rename = %+v, want id %d", seen, firstID)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("users = %d, want 1", count)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}
}

func TestEnsureValidTokenRejectsExpired(t *testing.T) {
	validate, err := EnsureValidToken(testEnv)
	if err != nil {
		t.Fatal(err)
	}
	handler := validate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	token, err := auth.CreateToken(testEnv, "auth0|123", "", -time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expired token status = %d, want 401", rec.Code)
	}
}
