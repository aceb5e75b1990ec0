package fiber

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/okondo/bulletin/core"
	"github.com/okondo/bulletin/crypto"
)

const testSecret = "token-secret-token-secret-token!"

type testEnv struct {
	app  *fiber.App
	mail *core.FakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := core.NewFakeUserStorage()
	posts := core.NewFakePostStorage()
	mail := &core.FakeMailer{}
	hasher, err := crypto.NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)

	authSvc := core.NewAuthService(users, mail, hasher, core.AuthConfig{
		TokenSecret: testSecret,
		CodeSecret:  "code-secret",
	}, nil)
	postSvc := core.NewPostService(posts, nil)

	app := fiber.New()
	New(app, authSvc, postSvc, Options{TokenSecret: testSecret}).RegisterRoutes()

	return &testEnv{app: app, mail: mail}
}

// request performs a JSON request and decodes the JSON response body.
func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func (e *testEnv) signUp(t *testing.T, email, password string) {
	t.Helper()
	resp, _ := e.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (e *testEnv) signIn(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := e.request(t, http.MethodPost, "/api/auth/signin", "", fiber.Map{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, e.mail.Sent)
	body := e.mail.Sent[len(e.mail.Sent)-1].Body
	return strings.TrimSuffix(strings.TrimPrefix(body, "<h1>"), "</h1>")
}

func TestSignupEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email": "jo@example.com", "password": "Abcdefg1",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Your account has been created successfully", body["message"])

	result, ok := body["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jo@example.com", result["email"])
	assert.NotContains(t, result, "password", "the hash must never be serialized")

	t.Run("duplicate email", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
			"email": "jo@example.com", "password": "Abcdefg1",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "User already exists!", body["message"])
	})

	t.Run("weak password", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
			"email": "new@example.com", "password": "abcdefg1",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, false, body["success"])
	})
}

func TestSigninEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "jo@example.com", "Abcdefg1")

	resp, body := env.request(t, http.MethodPost, "/api/auth/signin", "", fiber.Map{
		"email": "jo@example.com", "password": "Abcdefg1",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Logged in successfully", body["message"])

	token, _ := body["token"].(string)
	claims, err := crypto.ParseSession(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", claims.Email)

	var authCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "Authorization" {
			authCookie = c
		}
	}
	require.NotNil(t, authCookie, "session cookie should be set")
	assert.Equal(t, "Bearer "+token, authCookie.Value)

	t.Run("wrong password", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPost, "/api/auth/signin", "", fiber.Map{
			"email": "jo@example.com", "password": "Wrongpass1",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid password.", body["message"])
	})

	t.Run("unknown account", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPost, "/api/auth/signin", "", fiber.Map{
			"email": "nobody@example.com", "password": "Abcdefg1",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "User does not exists!", body["message"])
	})
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "jo@example.com", "Abcdefg1")

	t.Run("missing token", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPost, "/api/auth/signout", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Unauthorized", body["message"])
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPost, "/api/auth/signout", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Forbidden", body["message"])
	})

	t.Run("header token accepted", func(t *testing.T) {
		token := env.signIn(t, "jo@example.com", "Abcdefg1")
		resp, body := env.request(t, http.MethodPost, "/api/auth/signout", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Logged out successfully", body["message"])
	})

	t.Run("cookie token accepted", func(t *testing.T) {
		token := env.signIn(t, "jo@example.com", "Abcdefg1")

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
		req.AddCookie(&http.Cookie{Name: "Authorization", Value: "Bearer " + token})

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestVerificationFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "jo@example.com", "Abcdefg1")
	token := env.signIn(t, "jo@example.com", "Abcdefg1")

	resp, body := env.request(t, http.MethodPatch, "/api/auth/send-verification-code", token, fiber.Map{
		"email": "jo@example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Code sent successfully!", body["message"])

	t.Run("wrong code", func(t *testing.T) {
		wrong := "000000"
		if env.lastCode(t) == wrong {
			wrong = "000001"
		}
		resp, body := env.request(t, http.MethodPatch, "/api/auth/verify-verification-code", token, fiber.Map{
			"email": "jo@example.com", "code": wrong,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid verification code!", body["message"])
	})

	t.Run("correct code, then replay", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPatch, "/api/auth/verify-verification-code", token, fiber.Map{
			"email": "jo@example.com", "code": env.lastCode(t),
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Your account has been verified successfully!", body["message"])

		resp, body = env.request(t, http.MethodPatch, "/api/auth/verify-verification-code", token, fiber.Map{
			"email": "jo@example.com", "code": env.lastCode(t),
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "You are already verified!", body["message"])
	})

	t.Run("verified flag travels into the next session", func(t *testing.T) {
		fresh := env.signIn(t, "jo@example.com", "Abcdefg1")
		claims, err := crypto.ParseSession(fresh, testSecret)
		require.NoError(t, err)
		assert.True(t, claims.Verified)
	})
}

func TestForgotPasswordFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "jo@example.com", "Abcdefg1")

	// Public routes: no session required.
	resp, _ := env.request(t, http.MethodPatch, "/api/auth/send-forgot-password-code", "", fiber.Map{
		"email": "jo@example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.request(t, http.MethodPatch, "/api/auth/verify-forgot-password-code", "", fiber.Map{
		"email": "jo@example.com", "code": env.lastCode(t), "newPassword": "Newpass99",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Your password is updated successfully!", body["message"])

	env.signIn(t, "jo@example.com", "Newpass99")

	t.Run("unknown account yields 404", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodPatch, "/api/auth/send-forgot-password-code", "", fiber.Map{
			"email": "nobody@example.com",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPostEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "alice@example.com", "Abcdefg1")
	env.signUp(t, "bob@example.com", "Abcdefg1")
	alice := env.signIn(t, "alice@example.com", "Abcdefg1")
	bob := env.signIn(t, "bob@example.com", "Abcdefg1")

	resp, body := env.request(t, http.MethodPost, "/api/posts/create-post", alice, fiber.Map{
		"title": "First", "description": "hello",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	postID, _ := data["id"].(string)
	require.NotEmpty(t, postID)

	t.Run("create requires a session", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodPost, "/api/posts/create-post", "", fiber.Map{
			"title": "x", "description": "y",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("listing is public", func(t *testing.T) {
		resp, body := env.request(t, http.MethodGet, "/api/posts/all-posts?page=1", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), body["totalPosts"])
		assert.Equal(t, float64(1), body["totalPages"])
	})

	t.Run("single post", func(t *testing.T) {
		resp, body := env.request(t, http.MethodGet, "/api/posts/single-post?id="+postID, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		assert.Equal(t, "First", data["title"])

		resp, body = env.request(t, http.MethodGet, "/api/posts/single-post?id=missing", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Post not found", body["message"])
	})

	t.Run("only the owner mutates", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPut, "/api/posts/update-post", bob, fiber.Map{
			"id": postID, "title": "hijack", "description": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Unauthorized", body["message"])

		resp, _ = env.request(t, http.MethodDelete, "/api/posts/delete-post?id="+postID, bob, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, body = env.request(t, http.MethodPut, "/api/posts/update-post", alice, fiber.Map{
			"id": postID, "title": "Updated", "description": "hello",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		assert.Equal(t, "Updated", data["title"])

		resp, body = env.request(t, http.MethodDelete, "/api/posts/delete-post?id="+postID, alice, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Post deleted successfully", body["message"])
	})

	t.Run("missing post reported before ownership", func(t *testing.T) {
		resp, body := env.request(t, http.MethodDelete, "/api/posts/delete-post?id=gone", bob, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Post not found", body["message"])
	})
}
