package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// SecurityScheme is the name operations list in their Security requirement
// to be guarded by Middleware.
const SecurityScheme = "bearerAuth"

func UserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok && userID > 0
}

// Security is the requirement to attach to protected operations.
func Security() []map[string][]string {
	return []map[string][]string{{SecurityScheme: {}}}
}

func requiresAuth(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[SecurityScheme]; ok {
			return true
		}
	}
	return false
}

// credentials returns the token from the Authorization header, falling back
// to the auth cookie.
func credentials(ctx huma.Context) (token string, fromCookie bool) {
	if header := ctx.Header("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		return strings.TrimSpace(token), false
	}

	raw := ctx.Header("Cookie")
	if raw == "" {
		return "", false
	}
	cookies, err := http.ParseCookie(raw)
	if err != nil {
		return "", false
	}
	for _, c := range cookies {
		if c.Name == CookieName {
			return c.Value, true
		}
	}
	return "", false
}

// Middleware rejects requests to protected operations that carry no valid
// token, and otherwise stores the caller's user id under UserIDKey.
func (h *AuthHandler) Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresAuth(ctx.Operation()) {
			next(ctx)
			return
		}

		token, fromCookie := credentials(ctx)
		if token == "" {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: No token found")
			return
		}

		userID, exp, err := h.ParseToken(token)
		if err != nil {
			h.log.Debug("rejected token", "error", err)
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		// Sliding session: refresh cookie tokens past half their lifetime.
		if fromCookie && time.Until(exp) < h.tokenDuration()/2 {
			if newToken, err := h.GenerateToken(userID); err == nil {
				cookie := h.authCookie(newToken)
				ctx.AppendHeader("Set-Cookie", cookie.String())
			}
		}

		next(huma.WithValue(ctx, UserIDKey, userID))
	}
}
