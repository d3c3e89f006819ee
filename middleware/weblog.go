package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blogem/weblog/identity"
	"github.com/blogem/weblog/models"
	"github.com/blogem/weblog/userctx"
)

// ActorResolver works out who performed a call
type ActorResolver interface {
	Resolve(ctx context.Context, in identity.Input) string
}

// Submitter accepts finished web logs for persistence
type Submitter interface {
	Submit(entry models.WebLog)
}

// Operation identifies an audited call and carries its label
type Operation struct {
	Name        string
	Description string
}

// WebLogInterceptor captures audited calls and hands them to the dispatcher
type WebLogInterceptor struct {
	resolver    ActorResolver
	dispatcher  Submitter
	logger      logrus.FieldLogger
	tokenHeader string
	now         func() time.Time
}

// InterceptorOption customizes a WebLogInterceptor
type InterceptorOption func(*WebLogInterceptor)

// WithClock replaces the time source
func WithClock(now func() time.Time) InterceptorOption {
	return func(i *WebLogInterceptor) {
		i.now = now
	}
}

// WithTokenHeader sets the header carrying the bearer credential
func WithTokenHeader(header string) InterceptorOption {
	return func(i *WebLogInterceptor) {
		if header != "" {
			i.tokenHeader = header
		}
	}
}

// NewWebLogInterceptor creates an interceptor
func NewWebLogInterceptor(resolver ActorResolver, dispatcher Submitter, logger logrus.FieldLogger, opts ...InterceptorOption) *WebLogInterceptor {
	i := &WebLogInterceptor{
		resolver:    resolver,
		dispatcher:  dispatcher,
		logger:      logger,
		tokenHeader: "Authorization",
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// call is an audited invocation in progress
type call struct {
	start time.Time
	args  []interface{}
}

// Intercept runs fn and records a web log for it. fn's result, error and
// panics reach the caller untouched; the record is written either way.
//
// Example:
//
//	product, err := middleware.Intercept(ctx, interceptor,
//	    middleware.Operation{Name: "ProductService.Update", Description: "update product"},
//	    func(ctx context.Context) (*Product, error) { return svc.Update(ctx, id, param) },
//	    id, param)
func Intercept[T any](ctx context.Context, i *WebLogInterceptor, op Operation, fn func(context.Context) (T, error), args ...interface{}) (result T, err error) {
	c := i.begin(args)
	completed := false
	defer func() {
		i.finish(ctx, op, c, err, !completed)
	}()

	result, err = fn(ctx)
	completed = true
	return result, err
}

func (i *WebLogInterceptor) begin(args []interface{}) call {
	return call{start: i.now(), args: args}
}

// finish builds the record and dispatches it. It never panics.
func (i *WebLogInterceptor) finish(ctx context.Context, op Operation, c call, callErr error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.WithField("operation", op.Name).WithField("panic", r).Error("failed to record web log")
		}
	}()

	end := i.now()
	duration := end.Sub(c.start).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	info := userctx.GetRequestInfo(ctx)
	actor := i.resolver.Resolve(ctx, identity.Input{
		Credential: info.Credential,
		Form:       info.Form,
		Args:       c.args,
	})

	entry := models.WebLog{
		Actor:          actor,
		SourceIP:       info.ClientIP,
		Operation:      op.Name,
		Parameters:     FormatParameters(c.args),
		Description:    op.Description,
		OccurredAt:     end,
		DurationMillis: duration,
	}

	i.dispatcher.Submit(entry)

	fields := logrus.Fields{
		"actor":       entry.Actor,
		"ip":          entry.SourceIP,
		"operation":   entry.Operation,
		"description": entry.Description,
		"parameters":  entry.Parameters,
		"duration_ms": entry.DurationMillis,
	}
	switch {
	case panicked:
		fields["outcome"] = "panic"
	case callErr != nil:
		fields["outcome"] = "error"
		fields[logrus.ErrorKey] = callErr
	default:
		fields["outcome"] = "ok"
	}
	i.logger.WithFields(fields).Info("web log")
}

// FormatParameters renders call arguments as "arg0: <json>; arg1: <json>"
func FormatParameters(args []interface{}) string {
	parts := make([]string, 0, len(args))
	for n, arg := range args {
		parts = append(parts, fmt.Sprintf("arg%d: %s", n, serializeArg(arg)))
	}
	return strings.Join(parts, "; ")
}

func serializeArg(arg interface{}) string {
	data, err := json.Marshal(arg)
	if err != nil {
		return fmt.Sprintf("%v", arg)
	}
	return string(data)
}
