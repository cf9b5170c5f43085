// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services and handlers read them,
// and tests can inject them without running the full middleware chain.
package requestcontext

import (
	"context"
)

// Identity is the authenticated caller attached by the auth guard. Email is the
// only field the system interprets; Claims carries the rest of the token
// payload verbatim.
type Identity struct {
	Email  string
	Claims map[string]any
}

// Context key types (unexported for encapsulation).
type (
	identityKey  struct{}
	requestIDKey struct{}
	clientIPKey  struct{}
	userAgentKey struct{}
	deviceKey    struct{}
)

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFrom retrieves the authenticated identity. ok is false when the
// request never passed the auth guard.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(Identity)
	return ident, ok
}

// Email retrieves the authenticated caller's email, or "" when unauthenticated.
func Email(ctx context.Context) string {
	ident, _ := IdentityFrom(ctx)
	return ident.Email
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
// Useful for service unit tests that don't run the full middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the raw User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithDevice injects a parsed device description ("browser/os") into the context.
func WithDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, deviceKey{}, device)
}

// Device retrieves the parsed device description from the context.
func Device(ctx context.Context) string {
	if d, ok := ctx.Value(deviceKey{}).(string); ok {
		return d
	}
	return ""
}
