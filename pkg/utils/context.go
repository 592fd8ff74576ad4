package utils

import (
	"context"

	"kino-booking/pkg/navigation"
)

type contextKey string

const (
	RequestIDKey  contextKey = "request_id"
	NavigationKey contextKey = "navigation"
)

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(RequestIDKey)
	if val == nil {
		return "", false
	}

	requestID, ok := val.(string)
	return requestID, ok
}

func SetRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetNavigationFromContext returns the decoded navigation state. Requests
// that never passed the navigation middleware land on the default page.
func GetNavigationFromContext(ctx context.Context) navigation.State {
	state, ok := ctx.Value(NavigationKey).(navigation.State)
	if !ok {
		return navigation.Default()
	}
	return state
}

func SetNavigationContext(ctx context.Context, state navigation.State) context.Context {
	return context.WithValue(ctx, NavigationKey, state)
}
