package auth

import (
	"context"

	"github.com/omaradel73/zamazon-v2/internal/domain"
)

type contextKey struct{}

// WithAccount stores the verified account for the current request.
func WithAccount(ctx context.Context, account *domain.Account) context.Context {
	return context.WithValue(ctx, contextKey{}, account)
}

// AccountFromContext returns the account resolved from a verified token, or
// nil when the request is unauthenticated.
func AccountFromContext(ctx context.Context) *domain.Account {
	account, _ := ctx.Value(contextKey{}).(*domain.Account)
	return account
}
