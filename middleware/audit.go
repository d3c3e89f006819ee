package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/weblog/userctx"
)

// maxJSONBody bounds how much of a JSON request body is captured
const maxJSONBody = 1 << 20

// Handler audits every request of the route it wraps
func (i *WebLogInterceptor) Handler(description string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Timing starts before the body is read
			c := i.begin(nil)
			r = i.captureRequest(r)

			var params map[string]string
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				params = urlParams(rctx)
			}
			c.args = requestArgs(r, params)
			completed := false
			defer func() {
				op := Operation{Name: operationName(r, ""), Description: description}
				i.finish(r.Context(), op, c, nil, !completed)
			}()

			next.ServeHTTP(w, r)
			completed = true
		})
	}
}

// Registered audits requests whose route appears in table. Keys are
// "METHOD /route/pattern" and values are the operation descriptions.
// It must be mounted on a chi router.
func (i *WebLogInterceptor) Registered(table map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rctx := chi.RouteContext(r.Context())
			if rctx == nil || rctx.Routes == nil || len(table) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			// Route ahead of the mux so the pattern and URL params are known
			lookup := chi.NewRouteContext()
			pattern := rctx.Routes.Find(lookup, r.Method, requestPath(r))
			description, ok := table[r.Method+" "+pattern]
			if pattern == "" || !ok {
				next.ServeHTTP(w, r)
				return
			}

			c := i.begin(nil)
			r = i.captureRequest(r)
			c.args = requestArgs(r, urlParams(lookup))
			completed := false
			defer func() {
				op := Operation{Name: operationName(r, pattern), Description: description}
				i.finish(r.Context(), op, c, nil, !completed)
			}()

			next.ServeHTTP(w, r)
			completed = true
		})
	}
}

// captureRequest stores the request metadata in the context so nested
// Intercept calls made by the handler see the same caller
func (i *WebLogInterceptor) captureRequest(r *http.Request) *http.Request {
	// A malformed body still leaves the query string parsed
	_ = r.ParseForm()

	info := userctx.RequestInfo{
		Credential: r.Header.Get(i.tokenHeader),
		ClientIP:   getIPAddress(r),
		Form:       r.Form,
	}
	return r.WithContext(userctx.WithRequestInfo(r.Context(), info))
}

// requestArgs is the positional argument list of an HTTP call:
// form values, URL params and a JSON body, each when present
func requestArgs(r *http.Request, params map[string]string) []interface{} {
	var args []interface{}

	if form := captureFormData(r); len(form) > 0 {
		args = append(args, form)
	}
	if len(params) > 0 {
		args = append(args, params)
	}
	if body, ok := captureJSONBody(r); ok {
		args = append(args, body)
	}

	return args
}

// operationName is "METHOD /route/pattern", falling back to the raw path
func operationName(r *http.Request, pattern string) string {
	if pattern == "" {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			pattern = rctx.RoutePattern()
		}
	}
	if pattern == "" {
		pattern = r.URL.Path
	}
	return r.Method + " " + pattern
}

func requestPath(r *http.Request) string {
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	return r.URL.Path
}

func urlParams(rctx *chi.Context) map[string]string {
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for n, key := range rctx.URLParams.Keys {
		if key == "*" || n >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[n]
	}
	return params
}

// getIPAddress extracts IP address from request, checking X-Forwarded-For first
func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Take first IP if multiple
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// captureFormData flattens parsed form values
func captureFormData(r *http.Request) map[string]interface{} {
	if len(r.Form) == 0 {
		return nil
	}

	formMap := make(map[string]interface{}, len(r.Form))
	for key, values := range r.Form {
		if len(values) == 1 {
			formMap[key] = values[0]
		} else {
			formMap[key] = values
		}
	}
	return formMap
}

// captureJSONBody decodes a JSON request body and puts it back for the handler
func captureJSONBody(r *http.Request) (interface{}, bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody+1))
	if err != nil || len(data) > maxJSONBody {
		// Hand back what was read followed by the unread rest
		r.Body = readCloser{io.MultiReader(bytes.NewReader(data), r.Body), r.Body}
		return nil, false
	}
	r.Body = readCloser{bytes.NewReader(data), r.Body}

	var body interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, false
	}
	return body, true
}

type readCloser struct {
	io.Reader
	io.Closer
}
