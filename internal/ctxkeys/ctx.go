package ctxkeys

import (
	"context"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UploaderKey contextKey = "uploader"
)

// Uploader returns the authenticated uploader identity, or "" when the
// request carried no valid token.
func Uploader(ctx context.Context) string {
	uploader, _ := ctx.Value(UploaderKey).(string)
	return uploader
}

func WithUploader(ctx context.Context, uploader string) context.Context {
	return context.WithValue(ctx, UploaderKey, uploader)
}
