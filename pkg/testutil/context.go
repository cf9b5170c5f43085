package testutil

import (
	"net/http"

	"shaadi/pkg/requestcontext"
)

// WithIdentity attaches an authenticated identity to the request context.
// This simulates what the auth guard does after verifying a bearer token.
func WithIdentity(req *http.Request, email string) *http.Request {
	ctx := requestcontext.WithIdentity(req.Context(), requestcontext.Identity{
		Email:  email,
		Claims: map[string]any{"email": email},
	})
	return req.WithContext(ctx)
}

// WithClientMetadata attaches client IP and device info to the request
// context, matching what the metadata middleware records.
func WithClientMetadata(req *http.Request, ip, device string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, req.UserAgent())
	ctx = requestcontext.WithDevice(ctx, device)
	return req.WithContext(ctx)
}
