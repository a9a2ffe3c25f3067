package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gdg-garage/event-hotels-api/internal/config"
	"github.com/gdg-garage/event-hotels-api/internal/models"
	"github.com/gdg-garage/event-hotels-api/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", TokenDuration: time.Hour}
	handler := NewAuthHandler(cfg, nil, nil)

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := handler.GenerateToken(42)
		require.NoError(t, err)

		userID, exp, err := handler.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), userID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewAuthHandler(&config.Config{JWTSecret: "other-secret"}, nil, nil)
		token, _ := other.GenerateToken(42)

		_, _, err := handler.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		token := signed(t, cfg.JWTSecret, jwt.MapClaims{
			"user_id": 42,
			"exp":     time.Now().Add(-time.Minute).Unix(),
		})

		_, _, err := handler.ParseToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("MissingExpiry", func(t *testing.T) {
		token := signed(t, cfg.JWTSecret, jwt.MapClaims{"user_id": 42})

		_, _, err := handler.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		token := signed(t, cfg.JWTSecret, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

		_, _, err := handler.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, _, err := handler.ParseToken("lorem")
		assert.Error(t, err)
	})
}

func TestHandleMe(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.CreateUser(t, db)

	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, db, nil)

	t.Run("Authenticated", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, user.ID)
		resp, err := handler.HandleMe(ctx, &struct{}{})
		require.NoError(t, err)

		assert.Equal(t, user.ID, resp.Body.ID)
		assert.Equal(t, user.Username, resp.Body.Username)
		assert.Equal(t, user.Email, resp.Body.Email)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := handler.HandleMe(context.Background(), &struct{}{})
		assert.Error(t, err)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, uint(9999))
		_, err := handler.HandleMe(ctx, &struct{}{})
		assert.Error(t, err)
	})
}

func TestHandleLogin(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		DiscordClientID:    "client-id",
		DiscordRedirectURL: "http://127.0.0.1:8080/auth/discord/callback",
	}
	handler := NewAuthHandler(cfg, nil, nil)

	resp, err := handler.HandleLogin(context.Background(), &struct{}{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.Status)

	location, err := url.Parse(resp.Location)
	require.NoError(t, err)
	assert.Equal(t, "discord.com", location.Host)
	assert.Equal(t, "client-id", location.Query().Get("client_id"))
	assert.Equal(t, cfg.DiscordRedirectURL, location.Query().Get("redirect_uri"))
}

func TestHandleCallback(t *testing.T) {
	discord := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/token":
			if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
			w.Write([]byte(`{"access_token":"discord-access","token_type":"Bearer","expires_in":3600}`))
		case "/users/@me":
			if r.Header.Get("Authorization") != "Bearer discord-access" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"id":"123456","username":"testuser","email":"test@example.com","avatar":"avatar_hash"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer discord.Close()

	db := testutil.OpenDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", DiscordClientID: "id", DiscordClientSecret: "secret"}
	handler := NewAuthHandler(cfg, db, nil)
	handler.oauthConfig.Endpoint.TokenURL = discord.URL + "/token"
	handler.userAPI = discord.URL + "/users/@me"

	t.Run("CreatesUserAndIssuesToken", func(t *testing.T) {
		resp, err := handler.HandleCallback(context.Background(), &CallbackInput{Code: "good-code"})
		require.NoError(t, err)

		var user models.User
		require.NoError(t, db.Where("discord_id = ?", "123456").First(&user).Error)
		assert.Equal(t, "testuser", user.Username)

		userID, _, err := handler.ParseToken(resp.Body.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, userID)
		assert.Equal(t, CookieName, resp.SetCookie.Name)
		assert.Equal(t, resp.Body.Token, resp.SetCookie.Value)
	})

	t.Run("ReusesExistingUser", func(t *testing.T) {
		_, err := handler.HandleCallback(context.Background(), &CallbackInput{Code: "good-code"})
		require.NoError(t, err)

		var count int64
		db.Model(&models.User{}).Where("discord_id = ?", "123456").Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("MissingCode", func(t *testing.T) {
		_, err := handler.HandleCallback(context.Background(), &CallbackInput{})
		assert.Error(t, err)
	})

	t.Run("RejectedCode", func(t *testing.T) {
		_, err := handler.HandleCallback(context.Background(), &CallbackInput{Code: "bad-code"})
		assert.Error(t, err)
	})
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
