package userctx

import (
	"context"
	"net/url"
)

// Context key type
type contextKey string

const requestInfoKey contextKey = "request_info"

// RequestInfo is the request metadata an audited call needs
type RequestInfo struct {
	// Credential is the raw credential header value
	Credential string
	ClientIP   string
	Form       url.Values
}

// WithRequestInfo adds request metadata to the context
func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

// GetRequestInfo retrieves request metadata from the context.
// Calls made outside of a request get the zero value.
func GetRequestInfo(ctx context.Context) RequestInfo {
	info, ok := ctx.Value(requestInfoKey).(RequestInfo)
	if !ok {
		return RequestInfo{}
	}
	return info
}
