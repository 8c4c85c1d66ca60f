package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/outlay/outlay/internal/handler/dto"
)

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	router, _, tokens := newTestRouter(t)

	rec := postJSON(t, router, "/api/auth/register",
		`{"name":"Alice","email":"a@x.com","password":"pw123456"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Message != "Registration successful" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if resp.User.ID == "" || resp.User.Name != "Alice" || resp.User.Email != "a@x.com" {
		t.Errorf("unexpected user: %+v", resp.User)
	}

	// The token must be usable against the guarded routes
	claims, err := tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token embeds %q, want %q", claims.UserID, resp.User.ID)
	}

	// The password hash must never leak
	if strings.Contains(rec.Body.String(), "argon2id") {
		t.Error("response body leaks the password hash")
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	first := postJSON(t, router, "/api/auth/register",
		`{"name":"Alice","email":"a@x.com","password":"pw123456"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", first.Code)
	}

	second := postJSON(t, router, "/api/auth/register",
		`{"name":"Mallory","email":"a@x.com","password":"other-pw"}`)
	if second.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", second.Code)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(second.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "EMAIL_TAKEN" {
		t.Errorf("expected code EMAIL_TAKEN, got %q", resp.Code)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	testCases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Alice","password":"pw123456"}`},
		{"missing password", `{"name":"Alice","email":"a@x.com"}`},
		{"empty body", `{}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, router, "/api/auth/register", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}

			var resp dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Code != "MISSING_FIELDS" {
				t.Errorf("expected code MISSING_FIELDS, got %q", resp.Code)
			}
		})
	}
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/auth/register", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	if rec := postJSON(t, router, "/api/auth/register",
		`{"name":"Alice","email":"a@x.com","password":"pw123456"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}

	rec := postJSON(t, router, "/api/auth/login", `{"email":"a@x.com","password":"pw123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Login successful" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
}

// Unknown email and wrong password return byte-identical error bodies.
func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	if rec := postJSON(t, router, "/api/auth/register",
		`{"name":"Alice","email":"a@x.com","password":"pw123456"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}

	unknown := postJSON(t, router, "/api/auth/login", `{"email":"nobody@x.com","password":"pw123456"}`)
	wrongPw := postJSON(t, router, "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`)

	if unknown.Code != http.StatusBadRequest || wrongPw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400/400, got %d/%d", unknown.Code, wrongPw.Code)
	}
	if unknown.Body.String() != wrongPw.Body.String() {
		t.Errorf("credential error bodies differ:\n%s\n%s", unknown.Body.String(), wrongPw.Body.String())
	}
}
