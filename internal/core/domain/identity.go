package domain

import "context"

type accountCtxKey struct{}

// ContextWithAccount returns a copy of ctx carrying the authenticated account.
func ContextWithAccount(ctx context.Context, a *Account) context.Context {
	return context.WithValue(ctx, accountCtxKey{}, a)
}

// AccountFromContext returns the authenticated account stored by ContextWithAccount.
func AccountFromContext(ctx context.Context) (*Account, bool) {
	a, ok := ctx.Value(accountCtxKey{}).(*Account)
	return a, ok && a != nil
}
