package authserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fishit/fishit/internal/database"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return NewServer(store, "test-secret")
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/register", "", gin.H{
		"name": "Jean", "email": "jean@example.com", "password": "motdepasse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "POST", "/api/login", "", gin.H{
		"email": "jean@example.com", "password": "motdepasse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

func TestRegisterLoginMe(t *testing.T) {
	router := testServer(t).Router()
	token := registerAndLogin(t, router)

	w := doJSON(t, router, "GET", "/api/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("/me status = %d", w.Code)
	}

	var me struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("decoding /me: %v", err)
	}
	if me.Name != "Jean" || me.Email != "jean@example.com" {
		t.Errorf("/me = %+v, want Jean/jean@example.com", me)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := testServer(t).Router()

	body := gin.H{"name": "Jean", "email": "jean@example.com", "password": "motdepasse"}
	if w := doJSON(t, router, "POST", "/api/register", "", body); w.Code != http.StatusOK {
		t.Fatalf("first register status = %d", w.Code)
	}

	w := doJSON(t, router, "POST", "/api/register", "", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", w.Code)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	router := testServer(t).Router()
	registerAndLogin(t, router)

	w := doJSON(t, router, "POST", "/api/login", "", gin.H{
		"email": "jean@example.com", "password": "mauvais",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", w.Code)
	}

	w = doJSON(t, router, "POST", "/api/login", "", gin.H{
		"email": "inconnu@example.com", "password": "motdepasse",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown user status = %d, want 401", w.Code)
	}
}

func TestMe_RequiresToken(t *testing.T) {
	router := testServer(t).Router()

	if w := doJSON(t, router, "GET", "/api/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d, want 401", w.Code)
	}
	if w := doJSON(t, router, "GET", "/api/me", "not-a-jwt", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", w.Code)
	}
}

func TestUpdateUser(t *testing.T) {
	router := testServer(t).Router()
	token := registerAndLogin(t, router)

	w := doJSON(t, router, "PUT", "/api/users", token, gin.H{"name": "Jeanne"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		User    struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding update response: %v", err)
	}
	if !resp.Success || resp.User.Name != "Jeanne" {
		t.Errorf("update response = %+v, want success with name Jeanne", resp)
	}
}

func TestDeleteUser(t *testing.T) {
	router := testServer(t).Router()
	token := registerAndLogin(t, router)

	if w := doJSON(t, router, "DELETE", "/api/users", token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	// The account is gone; /me on the still-valid token now 404s
	if w := doJSON(t, router, "GET", "/api/me", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("/me after delete status = %d, want 404", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("4th request inside window should be rejected")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("different IP should not be affected")
	}
}
