package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/omaradel73/zamazon-v2/internal/auth"
	"github.com/omaradel73/zamazon-v2/internal/domain"
)

// AccountResolver turns a verified token subject into an account record.
type AccountResolver interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

type AuthMiddleware struct {
	tokens   *auth.TokenManager
	accounts AccountResolver
}

func NewAuthMiddleware(tokens *auth.TokenManager, accounts AccountResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, accounts: accounts}
}

// RequireAuth verifies the bearer token and resolves it to an account, which
// is stored on the request context. Identity is never taken from headers the
// client controls.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
			return
		}

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
			return
		}

		account, err := m.accounts.GetAccount(r.Context(), claims.AccountID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "unknown account")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithAccount(r.Context(), account)))
	})
}

// RequireAdmin gates the admin mutation surface: verified token, account
// lookup, then the role check.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := auth.AccountFromContext(r.Context())
		if account == nil || !account.IsAdmin() {
			respondError(w, http.StatusForbidden, "permission_denied", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
