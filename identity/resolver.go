// Package identity works out which admin performed an audited call.
//
// Resolution walks a configurable chain of sources and the first one that
// yields a usable name wins: the bearer token subject, a "username" request
// parameter, then the call arguments. When every source comes up empty the
// actor is models.AnonymousActor. Resolve never fails.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/blogem/weblog/authenticator"
	"github.com/blogem/weblog/models"
)

// UsernameField is the parameter and argument field consulted for an actor
const UsernameField = "username"

// Source is one step of the resolution chain
type Source string

const (
	SourceToken Source = "token"
	SourceForm  Source = "form"
	SourceArgs  Source = "args"
)

// DefaultOrder is the resolution chain used when none is configured
var DefaultOrder = []Source{SourceToken, SourceForm, SourceArgs}

// ActorHinter is implemented by call arguments that know who is acting
type ActorHinter interface {
	ActorHint() string
}

// Input is everything known about a call when its actor is resolved
type Input struct {
	// Credential is the raw credential header value, prefix included
	Credential string
	Form       url.Values
	Args       []interface{}
}

// Config controls token parsing and the resolution order
type Config struct {
	TokenPrefix string
	Order       []Source
}

// Resolver derives actor names from call inputs
type Resolver struct {
	decoder authenticator.TokenDecoder
	prefix  string
	order   []Source
	logger  logrus.FieldLogger
}

// NewResolver creates a resolver. A nil decoder disables the token step.
func NewResolver(decoder authenticator.TokenDecoder, cfg Config, logger logrus.FieldLogger) (*Resolver, error) {
	order := cfg.Order
	if len(order) == 0 {
		order = DefaultOrder
	}

	seen := make(map[Source]bool, len(order))
	for _, source := range order {
		switch source {
		case SourceToken, SourceForm, SourceArgs:
		default:
			return nil, fmt.Errorf("unknown identity source %q", source)
		}
		if seen[source] {
			return nil, fmt.Errorf("identity source %q listed twice", source)
		}
		seen[source] = true
	}

	return &Resolver{
		decoder: decoder,
		prefix:  cfg.TokenPrefix,
		order:   append([]Source(nil), order...),
		logger:  logger,
	}, nil
}

// Resolve returns the actor for a call, falling back to models.AnonymousActor
func (r *Resolver) Resolve(ctx context.Context, in Input) (actor string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithField("panic", rec).Warn("identity resolution panicked")
			actor = models.AnonymousActor
		}
	}()

	for _, source := range r.order {
		var name string
		switch source {
		case SourceToken:
			name = r.fromToken(ctx, in.Credential)
		case SourceForm:
			name = fromForm(in.Form)
		case SourceArgs:
			name = fromArgs(in.Args)
		}
		if usable(name) {
			return name
		}
	}

	return models.AnonymousActor
}

// usable rejects empty names and the sentinel itself
func usable(name string) bool {
	return name != "" && name != models.AnonymousActor
}

func (r *Resolver) fromToken(ctx context.Context, credential string) string {
	if r.decoder == nil {
		return ""
	}

	token := authenticator.ExtractToken(credential, r.prefix)
	if token == "" {
		return ""
	}

	subject, err := r.decoder.Subject(ctx, token)
	if err != nil {
		r.logger.WithError(err).Debug("bearer token not usable for actor")
		return ""
	}
	return strings.TrimSpace(subject)
}

func fromForm(form url.Values) string {
	return strings.TrimSpace(form.Get(UsernameField))
}

func fromArgs(args []interface{}) string {
	for _, arg := range args {
		if arg == nil {
			continue
		}
		if name := usernameField(arg); name != "" {
			return name
		}
		if hinter, ok := arg.(ActorHinter); ok {
			if name := strings.TrimSpace(hinter.ActorHint()); name != "" {
				return name
			}
		}
	}
	return ""
}

// usernameField looks for a "username" string in the key-value view of an argument
func usernameField(arg interface{}) string {
	switch v := arg.(type) {
	case url.Values:
		return strings.TrimSpace(v.Get(UsernameField))
	case map[string]string:
		return strings.TrimSpace(v[UsernameField])
	case map[string]interface{}:
		name, _ := v[UsernameField].(string)
		return strings.TrimSpace(name)
	case string, []byte:
		// Scalars have no fields; a JSON document string is still inspected
		raw, _ := v.(string)
		if b, ok := v.([]byte); ok {
			raw = string(b)
		}
		if !strings.HasPrefix(strings.TrimSpace(raw), "{") {
			return ""
		}
		return decodeUsername([]byte(raw))
	}

	data, err := json.Marshal(arg)
	if err != nil {
		return ""
	}
	return decodeUsername(data)
}

func decodeUsername(data []byte) string {
	var view map[string]interface{}
	if err := json.Unmarshal(data, &view); err != nil {
		return ""
	}
	name, _ := view[UsernameField].(string)
	return strings.TrimSpace(name)
}
