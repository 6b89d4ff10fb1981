package submit

import "context"

type ctxKey int

const tokenKey ctxKey = iota

// WithToken attaches the caller's bearer credential to the context. It is
// read immediately before each dispatch, so a token refreshed mid-retry is
// picked up by the next attempt.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}
