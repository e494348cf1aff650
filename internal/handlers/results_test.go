package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/drodber/results-service/internal/entity"
	"github.com/drodber/results-service/internal/handlers"
	jwtlib "github.com/drodber/results-service/internal/lib/jwt"
	"github.com/drodber/results-service/internal/middleware"
	"github.com/drodber/results-service/internal/repo"
	"github.com/drodber/results-service/internal/routes"
	"github.com/drodber/results-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// memStorage is an in-memory stand-in for the postgres storage,
// implementing both storage interfaces the services consume.
type memStorage struct {
	mu      sync.Mutex
	nextID  int64
	results map[int64]entity.Result
	users   map[int64]entity.User
}

func newMemStorage(users ...entity.User) *memStorage {
	s := &memStorage{
		results: make(map[int64]entity.Result),
		users:   make(map[int64]entity.User),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memStorage) SaveResult(_ context.Context, value, userID int64, t time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.results[s.nextID] = entity.Result{ID: s.nextID, Result: value, UserID: userID, Time: t}
	return s.nextID, nil
}

func (s *memStorage) GetResultByID(_ context.Context, id int64) (entity.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[id]
	if !ok {
		return entity.Result{}, repo.ErrResultNotFound
	}
	return result, nil
}

func (s *memStorage) GetResultByValue(_ context.Context, value int64) (entity.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, result := range s.results {
		if result.Result == value {
			return result, nil
		}
	}
	return entity.Result{}, repo.ErrResultNotFound
}

func sortResults(results []entity.Result, key string) {
	sort.Slice(results, func(i, j int) bool {
		switch key {
		case "result":
			return results[i].Result < results[j].Result
		case "user":
			return results[i].UserID < results[j].UserID
		default:
			return results[i].ID < results[j].ID
		}
	})
}

func (s *memStorage) GetResults(_ context.Context, sortKey string) ([]entity.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []entity.Result
	for _, result := range s.results {
		results = append(results, result)
	}
	sortResults(results, sortKey)
	return results, nil
}

func (s *memStorage) GetResultsByUserID(_ context.Context, userID int64, sortKey string) ([]entity.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []entity.Result
	for _, result := range s.results {
		if result.UserID == userID {
			results = append(results, result)
		}
	}
	sortResults(results, sortKey)
	return results, nil
}

func (s *memStorage) UpdateResult(_ context.Context, result entity.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[result.ID]; !ok {
		return repo.ErrResultNotFound
	}
	s.results[result.ID] = result
	return nil
}

func (s *memStorage) DeleteResult(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[id]; !ok {
		return repo.ErrResultNotFound
	}
	delete(s.results, id)
	return nil
}

func (s *memStorage) GetUserByID(_ context.Context, id int64) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return entity.User{}, repo.ErrUserNotFound
	}
	return user, nil
}

func (s *memStorage) GetUserByEmail(_ context.Context, email string) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return entity.User{}, repo.ErrUserNotFound
}

var (
	adminUser = entity.User{ID: 1, Email: "admin@example.com", Admin: true}
	aliceUser = entity.User{ID: 2, Email: "alice@example.com"}
	bobUser   = entity.User{ID: 3, Email: "bob@example.com"}
)

func newTestRouter(t *testing.T) (*gin.Engine, *memStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage := newMemStorage(adminUser, aliceUser, bobUser)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	resultService := services.NewResultService(log, storage, storage)
	authService := services.NewAuth(log, storage, testSecret, time.Hour)

	r := gin.New()
	api := r.Group("/api/v1")
	routes.RegisterPublicRoutes(api, handlers.NewResultHandler(resultService), handlers.NewLoginHandler(authService))

	private := api.Group("", middleware.NewAuthMiddleware(testSecret).Middleware())
	routes.RegisterPrivateRoutes(private, handlers.NewResultHandler(resultService))

	return r, storage
}

func tokenFor(t *testing.T, user entity.User) string {
	t.Helper()
	token, err := jwtlib.NewAccessToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type messageBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type itemBody struct {
	Result entity.Result `json:"result"`
}

type listBody struct {
	Results []itemBody `json:"results"`
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func TestOptions_NoAuthRequired(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodOptions, "/api/v1/results", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Allow"))
	assert.Equal(t, "public, immutable", w.Header().Get("Cache-Control"))

	w = doRequest(t, r, http.MethodOptions, "/api/v1/results/17", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, PUT, DELETE, OPTIONS", w.Header().Get("Allow"))

	// id 0 means collection scope
	w = doRequest(t, r, http.MethodOptions, "/api/v1/results/0", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Allow"))

	// a non-numeric id names no resource
	w = doRequest(t, r, http.MethodOptions, "/api/v1/results/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Allow"))
}

func TestResults_Unauthorized(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/results", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var msg messageBody
	decodeInto(t, w, &msg)
	assert.Equal(t, http.StatusUnauthorized, msg.Code)
	assert.Equal(t, "`Unauthorized`: Invalid credentials.", msg.Message)

	w = doRequest(t, r, http.MethodGet, "/api/v1/results", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResults_Lifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	token := tokenFor(t, aliceUser)

	// create
	w := doRequest(t, r, http.MethodPost, "/api/v1/results", token,
		gin.H{"result": 42, "user": aliceUser.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var created itemBody
	decodeInto(t, w, &created)
	assert.NotZero(t, created.Result.ID)
	assert.Equal(t, int64(42), created.Result.Result)
	assert.Equal(t, fmt.Sprintf("/api/v1/results/%d", created.Result.ID), w.Header().Get("Location"))

	// duplicate value, different owner: rejected
	w = doRequest(t, r, http.MethodPost, "/api/v1/results", tokenFor(t, bobUser),
		gin.H{"result": 42, "user": bobUser.ID})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var msg messageBody
	decodeInto(t, w, &msg)
	assert.Equal(t, http.StatusBadRequest, msg.Code)
	assert.Equal(t, "Bad Request", msg.Message)

	itemPath := fmt.Sprintf("/api/v1/results/%d", created.Result.ID)

	// retrieve
	w = doRequest(t, r, http.MethodGet, itemPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("ETag"))
	assert.Equal(t, "must-revalidate", w.Header().Get("Cache-Control"))

	// update value only
	w = doRequest(t, r, http.MethodPut, itemPath, token, gin.H{"result": 99})
	require.Equal(t, handlers.StatusContentReturned, w.Code)

	var updated itemBody
	decodeInto(t, w, &updated)
	assert.Equal(t, created.Result.ID, updated.Result.ID)
	assert.Equal(t, int64(99), updated.Result.Result)
	assert.Equal(t, created.Result.UserID, updated.Result.UserID)

	// delete
	w = doRequest(t, r, http.MethodDelete, itemPath, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// gone
	w = doRequest(t, r, http.MethodGet, itemPath, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateResult_UnprocessableEntity(t *testing.T) {
	r, _ := newTestRouter(t)
	token := tokenFor(t, aliceUser)

	for _, payload := range []gin.H{
		{},
		{"result": 42},
		{"user": aliceUser.ID},
		{"result": nil, "user": nil},
		// incompleteness wins over the malformed time
		{"user": aliceUser.ID, "time": "not-a-time"},
	} {
		w := doRequest(t, r, http.MethodPost, "/api/v1/results", token, payload)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, "payload: %v", payload)

		var msg messageBody
		decodeInto(t, w, &msg)
		assert.Equal(t, http.StatusUnprocessableEntity, msg.Code)
		assert.Equal(t, "Unprocessable Entity", msg.Message)
	}
}

func TestCreateResult_MalformedTime(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/results", tokenFor(t, aliceUser),
		gin.H{"result": 42, "user": aliceUser.ID, "time": "not-a-time"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateResult_UnknownOwner(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/results", tokenFor(t, aliceUser),
		gin.H{"result": 42, "user": 777})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateResult_SuppliedTime(t *testing.T) {
	r, _ := newTestRouter(t)

	supplied := "2020-06-01T12:00:00Z"
	w := doRequest(t, r, http.MethodPost, "/api/v1/results", tokenFor(t, aliceUser),
		gin.H{"result": 42, "user": aliceUser.ID, "time": supplied})
	require.Equal(t, http.StatusCreated, w.Code)

	var created itemBody
	decodeInto(t, w, &created)
	assert.Equal(t, supplied, created.Result.Time.Format(time.RFC3339))
}

func TestItemAccess_ForbiddenForStranger(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/results", tokenFor(t, aliceUser),
		gin.H{"result": 42, "user": aliceUser.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var created itemBody
	decodeInto(t, w, &created)
	itemPath := fmt.Sprintf("/api/v1/results/%d", created.Result.ID)

	bobToken := tokenFor(t, bobUser)

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, gin.H{"result": 50}},
		{http.MethodDelete, nil},
	} {
		w := doRequest(t, r, tc.method, itemPath, bobToken, tc.body)
		require.Equal(t, http.StatusForbidden, w.Code, "%s %s", tc.method, itemPath)

		var msg messageBody
		decodeInto(t, w, &msg)
		assert.Equal(t, http.StatusForbidden, msg.Code)
		assert.Equal(t, "`Forbidden`: you don't have permission to access", msg.Message)
	}

	// the admin can do all of it
	adminToken := tokenFor(t, adminUser)
	w = doRequest(t, r, http.MethodGet, itemPath, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListResults_VisibilityAndSort(t *testing.T) {
	r, _ := newTestRouter(t)

	aliceToken := tokenFor(t, aliceUser)
	bobToken := tokenFor(t, bobUser)

	for _, seed := range []struct {
		value int64
		user  entity.User
	}{
		{30, aliceUser},
		{10, aliceUser},
		{20, bobUser},
	} {
		w := doRequest(t, r, http.MethodPost, "/api/v1/results", tokenFor(t, seed.user),
			gin.H{"result": seed.value, "user": seed.user.ID})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// non-admins only see their own records
	w := doRequest(t, r, http.MethodGet, "/api/v1/results", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("ETag"))

	var list listBody
	decodeInto(t, w, &list)
	require.Len(t, list.Results, 2)
	for _, item := range list.Results {
		assert.Equal(t, aliceUser.ID, item.Result.UserID)
	}

	w = doRequest(t, r, http.MethodGet, "/api/v1/results", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeInto(t, w, &list)
	assert.Len(t, list.Results, 1)

	// the admin sees everything, ordered by the requested key
	w = doRequest(t, r, http.MethodGet, "/api/v1/results.json/result", tokenFor(t, adminUser), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeInto(t, w, &list)
	require.Len(t, list.Results, 3)
	assert.Equal(t, int64(10), list.Results[0].Result.Result)
	assert.Equal(t, int64(20), list.Results[1].Result.Result)
	assert.Equal(t, int64(30), list.Results[2].Result.Result)
}

func TestListResults_EmptyIsNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/results", tokenFor(t, adminUser), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var msg messageBody
	decodeInto(t, w, &msg)
	assert.Equal(t, http.StatusNotFound, msg.Code)
	assert.Equal(t, "Not Found", msg.Message)
}

func TestResults_XMLFormat(t *testing.T) {
	r, _ := newTestRouter(t)
	token := tokenFor(t, aliceUser)

	w := doRequest(t, r, http.MethodPost, "/api/v1/results", token,
		gin.H{"result": 42, "user": aliceUser.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var created itemBody
	decodeInto(t, w, &created)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/results/%d.xml", created.Result.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.NotEmpty(t, w.Header().Get("ETag"))
	assert.True(t, strings.Contains(w.Body.String(), "<result>"))

	w = doRequest(t, r, http.MethodGet, "/api/v1/results.xml", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
}

func TestLogin_IssuesUsableToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	storage := newMemStorage()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	password := "s3cret-enough"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	storage.users[1] = entity.User{ID: 1, Email: "admin@example.com", PassHash: hash, Admin: true}

	resultService := services.NewResultService(log, storage, storage)
	authService := services.NewAuth(log, storage, testSecret, time.Hour)

	r := gin.New()
	api := r.Group("/api/v1")
	routes.RegisterPublicRoutes(api, handlers.NewResultHandler(resultService), handlers.NewLoginHandler(authService))

	w := doRequest(t, r, http.MethodPost, "/api/v1/login_check", "",
		gin.H{"email": "admin@example.com", "password": password})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	decodeInto(t, w, &resp)
	require.NotEmpty(t, resp.Token)

	principal, err := jwtlib.ParseAccessToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(1), principal.UserID)
	assert.True(t, principal.Admin)

	// wrong password
	w = doRequest(t, r, http.MethodPost, "/api/v1/login_check", "",
		gin.H{"email": "admin@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
