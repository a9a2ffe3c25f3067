package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-hotels-api/internal/config"
	"github.com/gdg-garage/event-hotels-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	DiscordAuthorizeEndpoint = "https://discord.com/api/oauth2/authorize"
	DiscordTokenEndpoint     = "https://discord.com/api/oauth2/token"
	DiscordUserAPI           = "https://discord.com/api/users/@me"

	CookieName = "auth_token"
)

type AuthHandler struct {
	oauthConfig *oauth2.Config
	userAPI     string
	db          *gorm.DB
	cfg         *config.Config
	log         *slog.Logger
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  DiscordAuthorizeEndpoint,
				TokenURL: DiscordTokenEndpoint,
			},
		},
		userAPI: DiscordUserAPI,
		db:      db,
		cfg:     cfg,
		log:     log,
	}
}

func (h *AuthHandler) tokenDuration() time.Duration {
	if h.cfg.TokenDuration > 0 {
		return h.cfg.TokenDuration
	}
	return 24 * time.Hour
}

func (h *AuthHandler) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(h.tokenDuration()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ParseToken validates a token issued by GenerateToken and returns the user
// it was issued to along with its expiry.
func (h *AuthHandler) ParseToken(tokenString string) (uint, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, time.Time{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, time.Time{}, errors.New("invalid token")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat < 1 {
		return 0, time.Time{}, errors.New("invalid token claims")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return 0, time.Time{}, err
	}
	if exp == nil {
		return 0, time.Time{}, errors.New("token without expiry")
	}

	return uint(userIDFloat), exp.Time, nil
}

func (h *AuthHandler) authCookie(token string) http.Cookie {
	return http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.tokenDuration()),
		HttpOnly: true,
		Path:     "/",
	}
}

type LoginOutput struct {
	Status   int
	Location string `header:"Location"`
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *struct{}) (*LoginOutput, error) {
	return &LoginOutput{
		Status:   http.StatusTemporaryRedirect,
		Location: h.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOnline),
	}, nil
}

type CallbackInput struct {
	Code string `query:"code" doc:"OAuth2 authorization code"`
}

type TokenOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Token     string    `json:"token" doc:"Bearer token for the Authorization header"`
		ExpiresAt time.Time `json:"expires_at"`
	}
}

func (h *AuthHandler) HandleCallback(ctx context.Context, input *CallbackInput) (*TokenOutput, error) {
	if input.Code == "" {
		return nil, huma.Error400BadRequest("Code not found")
	}

	token, err := h.oauthConfig.Exchange(ctx, input.Code)
	if err != nil {
		h.log.Error("failed to exchange oauth code", slog.Any("error", err))
		return nil, huma.Error401Unauthorized("Failed to exchange token")
	}

	resp, err := h.oauthConfig.Client(ctx, token).Get(h.userAPI)
	if err != nil {
		return nil, huma.Error502BadGateway("Failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, huma.Error502BadGateway(fmt.Sprintf("Failed to get user info: %s", resp.Status))
	}

	var discordUser struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&discordUser); err != nil {
		return nil, huma.Error502BadGateway("Failed to decode user info")
	}
	if discordUser.ID == "" {
		return nil, huma.Error502BadGateway("User info without id")
	}

	var user models.User
	if err := h.db.WithContext(ctx).FirstOrInit(&user, models.User{DiscordID: discordUser.ID}).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	user.Username = discordUser.Username
	user.Email = discordUser.Email
	user.Avatar = discordUser.Avatar

	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to save user")
	}

	jwtToken, err := h.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	h.log.Info("user logged in", slog.Uint64("user_id", uint64(user.ID)))

	out := &TokenOutput{SetCookie: h.authCookie(jwtToken)}
	out.Body.Token = jwtToken
	out.Body.ExpiresAt = out.SetCookie.Expires
	return out, nil
}

type MeOutput struct {
	Body struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *struct{}) (*MeOutput, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error401Unauthorized("Unauthorized: Unknown user")
		}
		return nil, huma.Error500InternalServerError("Database error")
	}

	resp := &MeOutput{}
	resp.Body.ID = user.ID
	resp.Body.Username = user.Username
	resp.Body.Email = user.Email
	resp.Body.Avatar = user.Avatar
	return resp, nil
}
