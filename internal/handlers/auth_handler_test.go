package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vantagefin/vantage/internal/auth"
	"github.com/vantagefin/vantage/internal/service"
	"github.com/vantagefin/vantage/internal/storage"
)

func newAuthHandler() *AuthHandler {
	users := service.NewUserService(storage.NewMemoryStorage())
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthHandler(users, jwtManager, CookieConfig{Name: "token"})
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestSignup(t *testing.T) {
	h := newAuthHandler()

	body := `{"name":"Ann","email":"ann@x.com","password":"p1","confirmpassword":"p1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "Signup successful" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be http-only")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Error("session cookie must be SameSite=Lax")
	}
}

func TestSignup_PasswordMismatch(t *testing.T) {
	h := newAuthHandler()

	body := `{"name":"Ann","email":"ann@x.com","password":"p1","confirmpassword":"p2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Passwords do not match") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if sessionCookie(t, rec) != nil {
		t.Error("no cookie may be set on failed signup")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	h := newAuthHandler()

	body := `{"name":"Ann","email":"ann@x.com","password":"p1","confirmpassword":"p1"}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body)))

	rec = httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User already exists") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestLogin(t *testing.T) {
	h := newAuthHandler()

	signupBody := `{"name":"Ann","email":"ann@x.com","password":"p1","confirmpassword":"p1"}`
	h.Signup(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(signupBody)))

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ann@x.com","password":"p1"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "Login successful" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if sessionCookie(t, rec) == nil {
		t.Error("expected session cookie on login")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newAuthHandler()

	signupBody := `{"name":"Ann","email":"ann@x.com","password":"p1","confirmpassword":"p1"}`
	h.Signup(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(signupBody)))

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ann@x.com","password":"nope"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if sessionCookie(t, rec) != nil {
		t.Error("no cookie may be set on failed login")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ghost@x.com","password":"p1"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User does not exist") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
