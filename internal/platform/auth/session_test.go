package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func testGate() *Gate {
	return NewGate(map[string]string{"1": "1234", "2": "5678"}, "test-secret", time.Hour)
}

func TestGate_LoginAndVerify(t *testing.T) {
	g := testGate()
	token, err := g.Login("1", "1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := g.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.DoctorID != "1" {
		t.Errorf("expected doctor 1, got %q", claims.DoctorID)
	}
}

func TestGate_LoginWrongPIN(t *testing.T) {
	g := testGate()
	for _, tc := range []struct{ id, pin string }{
		{"1", "0000"},
		{"1", ""},
		{"99", "1234"},
	} {
		if _, err := g.Login(tc.id, tc.pin); !errors.Is(err, ErrInvalidPIN) {
			t.Errorf("Login(%q, %q): expected ErrInvalidPIN, got %v", tc.id, tc.pin, err)
		}
	}
}

func TestGate_VerifyRejectsExpired(t *testing.T) {
	g := NewGate(map[string]string{"1": "1234"}, "test-secret", -time.Minute)
	token, err := g.Login("1", "1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := g.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestGate_VerifyRejectsWrongSecret(t *testing.T) {
	token, err := testGate().Login("2", "5678")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	other := NewGate(map[string]string{"2": "5678"}, "different-secret", time.Hour)
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestRequireDoctor(t *testing.T) {
	g := testGate()
	token, _ := g.Login("2", "5678")

	e := echo.New()
	handler := RequireDoctor(g)(func(c echo.Context) error {
		return c.String(http.StatusOK, DoctorID(c))
	})

	// With a valid token.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Body.String() != "2" {
		t.Errorf("expected doctor id 2 on context, got %q", rec.Body.String())
	}

	// Without a token.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}

	// With a garbage token.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.token")
	rec = httptest.NewRecorder()
	err = handler(e.NewContext(req, rec))
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}
