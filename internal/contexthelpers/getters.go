package contexthelpers

import (
	"context"
)

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}

func CSPNonce(ctx context.Context) string {
	nonce, ok := ctx.Value(cspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return nonce
}

// IsHTMX reports whether the request was issued by htmx and expects a partial response.
func IsHTMX(ctx context.Context) bool {
	isHTMX, ok := ctx.Value(isHTMXContextKey).(bool)
	if !ok {
		return false
	}

	return isHTMX
}
