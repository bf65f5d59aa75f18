package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andryushik/MyDiary/auth"
	"github.com/Andryushik/MyDiary/config"
	"github.com/Andryushik/MyDiary/feed"
	"github.com/Andryushik/MyDiary/handlers"
	"github.com/Andryushik/MyDiary/posts"
	"github.com/Andryushik/MyDiary/routes"
	"github.com/Andryushik/MyDiary/store"
	"github.com/Andryushik/MyDiary/users"
)

type fakeImages struct{}

func (fakeImages) Upload(_ context.Context, ownerID, filename string, _ io.Reader) (string, error) {
	return "https://img.example/" + ownerID + "/" + filename, nil
}

func (fakeImages) Delete(context.Context, string) error { return nil }

type envelope struct {
	Success bool            `json:"success"`
	Msg     json.RawMessage `json:"msg"`
	Result  json.RawMessage `json:"result"`
}

type app struct {
	router *gin.Engine
	tokens *auth.TokenService
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimit:       1000,
		RateLimitWindow: time.Minute,
	}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	postStore := store.NewMemPostStore()
	userStore := store.NewMemUserStore()
	images := fakeImages{}

	handler := handlers.New(
		users.NewService(userStore, tokens, images),
		posts.NewService(postStore, userStore, images),
		feed.NewService(postStore, userStore, cfg.Location()),
	)
	return &app{router: routes.SetupRouter(cfg, handler, tokens), tokens: tokens}
}

func (a *app) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func (a *app) signup(t *testing.T, email string) (id, token string) {
	t.Helper()
	rec, env := a.do(t, "POST", "/api/auth/signup", "", map[string]string{
		"email":     email,
		"password":  "hunter22",
		"firstName": "Test",
		"lastName":  "User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Result, &result))
	return result.ID, result.Token
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	a := newApp(t)

	rec, env := a.do(t, "GET", "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}

func TestExpiredTokenDistinctMessage(t *testing.T) {
	a := newApp(t)
	stale := auth.NewTokenService("test-secret", -time.Minute)
	expired, err := stale.Issue("someone")
	require.NoError(t, err)

	rec, env := a.do(t, "GET", "/api/me", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `"Token is expired"`, string(env.Msg))

	rec, env = a.do(t, "GET", "/api/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `"Invalid Token"`, string(env.Msg))
}

func TestSignupLoginFlow(t *testing.T) {
	a := newApp(t)
	id, token := a.signup(t, "alice@example.com")
	require.NotEmpty(t, id)

	rec, env := a.do(t, "GET", "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	// Second signup with the same email conflicts.
	rec, env = a.do(t, "POST", "/api/auth/signup", "", map[string]string{
		"email":     "alice@example.com",
		"password":  "hunter22",
		"firstName": "Test",
		"lastName":  "User",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	rec, _ = a.do(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupValidationEnvelope(t *testing.T) {
	a := newApp(t)

	rec, env := a.do(t, "POST", "/api/auth/signup", "", map[string]string{
		"email": "bad",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	var msgs []string
	require.NoError(t, json.Unmarshal(env.Msg, &msgs), "validation msg is a list")
	assert.NotEmpty(t, msgs)
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	a := newApp(t)
	aliceID, aliceToken := a.signup(t, "alice@example.com")
	_, bobToken := a.signup(t, "bob@example.com")

	rec, env := a.do(t, "POST", "/api/post", aliceToken, map[string]interface{}{
		"content": "first entry",
		"tags":    "diary",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Result, &created))

	// A stranger cannot delete it.
	rec, env = a.do(t, "DELETE", "/api/post/"+created.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.Success)

	// Likes toggle reports the resulting state.
	rec, env = a.do(t, "PUT", "/api/post/"+created.ID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"The post has been liked"`, string(env.Msg))

	// The owner's timeline shows the post.
	rec, env = a.do(t, "GET", "/api/timeline/"+aliceID, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var timeline []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Result, &timeline))
	assert.Len(t, timeline, 1)

	// The owner deletes it.
	rec, _ = a.do(t, "DELETE", "/api/post/"+created.ID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(t, "GET", "/api/post/"+created.ID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedOverHTTP(t *testing.T) {
	a := newApp(t)
	aliceID, aliceToken := a.signup(t, "alice@example.com")
	bobID, bobToken := a.signup(t, "bob@example.com")

	rec, _ := a.do(t, "POST", "/api/post", bobToken, map[string]interface{}{"content": "public entry"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = a.do(t, "POST", "/api/post", bobToken, map[string]interface{}{"content": "secret", "isPrivate": true})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = a.do(t, "PUT", "/api/user/"+bobID+"/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := a.do(t, "GET", "/api/feed/"+aliceID, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Result, &posts))
	require.Len(t, posts, 1, "only the public post is visible")
	assert.Equal(t, "public entry", posts[0].Content)

	// Another user's feed is not found, not forbidden.
	rec, _ = a.do(t, "GET", "/api/feed/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBadPageParam(t *testing.T) {
	a := newApp(t)
	aliceID, aliceToken := a.signup(t, "alice@example.com")

	rec, env := a.do(t, "GET", "/api/timeline/"+aliceID+"?page=abc", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}
