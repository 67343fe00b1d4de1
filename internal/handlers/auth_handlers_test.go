package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropportal/backend/internal/auth"
	"github.com/cropportal/backend/internal/handlers"
	"github.com/cropportal/backend/internal/models"
	"github.com/cropportal/backend/internal/service"
	"github.com/cropportal/backend/internal/utils"
)

// userRepoStub implements repository.UserRepository with function fields.
type userRepoStub struct {
	createFunc     func(ctx context.Context, user *models.User) error
	getByEmailFunc func(ctx context.Context, email string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFunc(ctx, user)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFunc(ctx, email)
}

func (s *userRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

// issuerStub implements auth.TokenIssuer.
type issuerStub struct{ token string }

func (s *issuerStub) GenerateToken(email, name string) (string, error) {
	return s.token, nil
}

// hasherStub implements auth.PasswordHasher.
type hasherStub struct{ match bool }

func (s *hasherStub) Hash(password string) (string, error) { return "hashed", nil }

func (s *hasherStub) Verify(password, encodedHash string) (bool, error) {
	return s.match, nil
}

func newAuthHandler(repo *userRepoStub, match bool) *handlers.AuthHandler {
	svc := service.NewAuthService(repo, &issuerStub{token: "jwt-token"}, &hasherStub{match: match})
	return handlers.NewAuthHandler(svc)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegister(t *testing.T) {
	repo := &userRepoStub{
		createFunc: func(ctx context.Context, user *models.User) error {
			user.ID = 1
			return nil
		},
	}
	h := newAuthHandler(repo, true)

	r := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{"email":"a@x.com","name":"A","password":"p"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.Equal(t, "jwt-token", body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "A", user["name"])
}

func TestRegister_MissingFields(t *testing.T) {
	h := newAuthHandler(&userRepoStub{}, true)

	r := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{"email":"a@x.com"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "error")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &userRepoStub{
		createFunc: func(ctx context.Context, user *models.User) error {
			return utils.NewDuplicateError("User", "email", user.Email)
		},
	}
	h := newAuthHandler(repo, true)

	r := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{"email":"a@x.com","name":"A","password":"p"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, r)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User already exists", body["error"])
}

func TestLogin(t *testing.T) {
	repo := &userRepoStub{
		getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Name: "A", PasswordHash: "hashed"}, nil
		},
	}
	h := newAuthHandler(repo, true)

	r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"a@x.com","password":"p"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "jwt-token", body["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := &userRepoStub{
		getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Name: "A", PasswordHash: "hashed"}, nil
		},
	}
	h := newAuthHandler(repo, false)

	r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"a@x.com","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, r)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestVerify(t *testing.T) {
	h := newAuthHandler(&userRepoStub{}, true)

	r := httptest.NewRequest("GET", "/api/auth/verify", nil)
	ctx := context.WithValue(r.Context(), auth.EmailContextKey, "a@x.com")
	ctx = context.WithValue(ctx, auth.NameContextKey, "A")
	r = r.WithContext(ctx)
	rec := httptest.NewRecorder()

	h.Verify(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["valid"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "A", user["name"])
}

func TestVerify_NoIdentity(t *testing.T) {
	h := newAuthHandler(&userRepoStub{}, true)

	r := httptest.NewRequest("GET", "/api/auth/verify", nil)
	rec := httptest.NewRecorder()

	h.Verify(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
