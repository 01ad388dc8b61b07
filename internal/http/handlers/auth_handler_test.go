package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

type memUserStore struct {
	accounts map[string]struct {
		user models.User
		hash string
	}
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{accounts: map[string]struct {
		user models.User
		hash string
	}{}}
}

func (s *memUserStore) Create(u models.User, hash string) (models.User, error) {
	if _, ok := s.accounts[u.Email]; ok {
		return models.User{}, domain.ConflictError{Field: "email", Msg: "email already in use"}
	}
	s.nextID++
	u.ID = s.nextID
	s.accounts[u.Email] = struct {
		user models.User
		hash string
	}{u, hash}
	return u, nil
}

func (s *memUserStore) GetByEmail(email string) (models.User, string, error) {
	acc, ok := s.accounts[email]
	if !ok {
		return models.User{}, "", domain.NotFoundError{Resource: "user", Field: "email"}
	}
	return acc.user, acc.hash, nil
}

func newAuthTestEngine() (*gin.Engine, *memUserStore) {
	gin.SetMode(gin.TestMode)
	store := newMemUserStore()
	authSvc := services.AuthService{Users: store, Secret: []byte("test-secret")}
	h := AuthHandler{Auth: authSvc}

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.ResolveUser(authSvc))
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", middleware.RequireUser(), h.Logout)
	api.GET("/auth/me", middleware.RequireUser(), h.Me)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatalf("no session cookie in response, headers: %v", w.Header())
	return nil
}

func TestRegisterSetsHTTPOnlySessionCookie(t *testing.T) {
	r, _ := newAuthTestEngine()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","name":"alice","password":"hunter22"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "hunter22") {
		t.Fatalf("password leaked into response body")
	}

	cookie := sessionCookie(t, w)
	if cookie.Value == "" {
		t.Fatalf("session cookie should carry a token")
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	raw := w.Header().Get("Set-Cookie")
	if !strings.Contains(raw, "SameSite=Strict") {
		t.Fatalf("session cookie must be SameSite=Strict, got %q", raw)
	}
}

func TestLoginWrongPasswordSetsNoCookie(t *testing.T) {
	r, _ := newAuthTestEngine()
	doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","name":"alice","password":"hunter22"}`, nil)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"email":"a@b.com","password":"wrong"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be set on failed login")
	}
	if !strings.Contains(w.Body.String(), "password") {
		t.Fatalf("error should target the password field, body %s", w.Body.String())
	}
}

func TestLoginUnknownEmailIs404(t *testing.T) {
	r, _ := newAuthTestEngine()

	w := doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever"}`, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRegisterDuplicateEmailFieldError(t *testing.T) {
	r, _ := newAuthTestEngine()
	doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","name":"alice","password":"hunter22"}`, nil)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","name":"bob","password":"hunter22"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"email"`) {
		t.Fatalf("duplicate email should produce an email field error, body %s", w.Body.String())
	}
}

func TestLogoutClearsCookieAndMeFails(t *testing.T) {
	r, _ := newAuthTestEngine()

	registered := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","name":"alice","password":"hunter22"}`, nil)
	session := sessionCookie(t, registered)

	me := doJSON(t, r, http.MethodGet, "/api/auth/me", "", []*http.Cookie{session})
	if me.Code != http.StatusOK {
		t.Fatalf("me with session = %d, want 200, body %s", me.Code, me.Body.String())
	}

	logout := doJSON(t, r, http.MethodPost, "/api/auth/logout", "", []*http.Cookie{session})
	if logout.Code != http.StatusOK {
		t.Fatalf("logout = %d, want 200", logout.Code)
	}
	cleared := sessionCookie(t, logout)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("logout must expire the cookie, got value=%q maxAge=%d", cleared.Value, cleared.MaxAge)
	}

	// The client dropped the cookie; the next /me is anonymous.
	meAfter := doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	if meAfter.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout = %d, want 401", meAfter.Code)
	}
}
