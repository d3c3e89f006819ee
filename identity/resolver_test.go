package identity

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/weblog/models"
)

// fakeDecoder maps tokens to subjects and counts calls
type fakeDecoder struct {
	subjects map[string]string
	calls    int
}

func (d *fakeDecoder) Subject(_ context.Context, token string) (string, error) {
	d.calls++
	subject, ok := d.subjects[token]
	if !ok {
		return "", errors.New("signature is invalid")
	}
	return subject, nil
}

type productParam struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type hintedParam struct {
	operator string
}

func (p hintedParam) ActorHint() string { return p.operator }

type nilHinter struct{ name *string }

func (p *nilHinter) ActorHint() string { return *p.name }

func newTestResolver(t *testing.T, decoder *fakeDecoder, order ...Source) (*Resolver, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var d interface {
		Subject(context.Context, string) (string, error)
	}
	if decoder != nil {
		d = decoder
	}

	resolver, err := NewResolver(d, Config{TokenPrefix: "Bearer ", Order: order}, logger)
	require.NoError(t, err)
	return resolver, hook
}

func TestResolve_TokenSubjectWins(t *testing.T) {
	decoder := &fakeDecoder{subjects: map[string]string{"good": "bob"}}
	resolver, _ := newTestResolver(t, decoder)

	actor := resolver.Resolve(context.Background(), Input{
		Credential: "Bearer good",
		Form:       url.Values{"username": {"eve"}},
		Args:       []interface{}{map[string]interface{}{"username": "alice"}},
	})

	assert.Equal(t, "bob", actor)
}

func TestResolve_InvalidTokenFallsThrough(t *testing.T) {
	decoder := &fakeDecoder{subjects: map[string]string{}}
	resolver, hook := newTestResolver(t, decoder)

	actor := resolver.Resolve(context.Background(), Input{
		Credential: "Bearer forged",
		Form:       url.Values{"username": {"eve"}},
	})

	assert.Equal(t, "eve", actor)
	assert.Equal(t, 1, decoder.calls)

	// Decode failure is logged quietly, never surfaced
	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
}

func TestResolve_AnonymousSubjectIsFailure(t *testing.T) {
	decoder := &fakeDecoder{subjects: map[string]string{"anon": models.AnonymousActor}}
	resolver, _ := newTestResolver(t, decoder)

	actor := resolver.Resolve(context.Background(), Input{
		Credential: "Bearer anon",
		Args:       []interface{}{productParam{ID: 1, Username: "alice"}},
	})

	assert.Equal(t, "alice", actor)
}

func TestResolve_ArgumentUsername(t *testing.T) {
	resolver, _ := newTestResolver(t, &fakeDecoder{})

	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"map argument", []interface{}{map[string]interface{}{"username": "alice"}}, "alice"},
		{"struct argument", []interface{}{int64(7), productParam{ID: 7, Username: "alice"}}, "alice"},
		{"pointer argument", []interface{}{&productParam{Username: "alice"}}, "alice"},
		{"string map", []interface{}{map[string]string{"username": "alice"}}, "alice"},
		{"url values", []interface{}{url.Values{"username": {"alice"}}}, "alice"},
		{"json string", []interface{}{`{"username":"alice"}`}, "alice"},
		{"actor hint", []interface{}{hintedParam{operator: "dave"}}, "dave"},
		{"first argument wins", []interface{}{hintedParam{operator: "dave"}, productParam{Username: "alice"}}, "dave"},
		{"empty username", []interface{}{productParam{Username: ""}}, models.AnonymousActor},
		{"non-string username", []interface{}{map[string]interface{}{"username": 42}}, models.AnonymousActor},
		{"scalars only", []interface{}{"plain", 3, nil}, models.AnonymousActor},
		{"unserializable", []interface{}{make(chan int)}, models.AnonymousActor},
		{"no args", nil, models.AnonymousActor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(context.Background(), Input{Args: tt.args}))
		})
	}
}

func TestResolve_NeverPanics(t *testing.T) {
	resolver, hook := newTestResolver(t, &fakeDecoder{})

	actor := resolver.Resolve(context.Background(), Input{
		Args: []interface{}{&nilHinter{}},
	})

	assert.Equal(t, models.AnonymousActor, actor)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestResolve_NoCredentialSkipsDecoder(t *testing.T) {
	decoder := &fakeDecoder{}
	resolver, _ := newTestResolver(t, decoder)

	actor := resolver.Resolve(context.Background(), Input{Credential: "Bearer "})

	assert.Equal(t, models.AnonymousActor, actor)
	assert.Zero(t, decoder.calls)
}

func TestResolve_NilDecoder(t *testing.T) {
	resolver, _ := newTestResolver(t, nil)

	actor := resolver.Resolve(context.Background(), Input{
		Credential: "Bearer whatever",
		Form:       url.Values{"username": {"eve"}},
	})

	assert.Equal(t, "eve", actor)
}

func TestResolve_ConfiguredOrder(t *testing.T) {
	decoder := &fakeDecoder{subjects: map[string]string{"good": "bob"}}
	resolver, _ := newTestResolver(t, decoder, SourceArgs, SourceForm, SourceToken)

	in := Input{
		Credential: "Bearer good",
		Form:       url.Values{"username": {"eve"}},
		Args:       []interface{}{map[string]interface{}{"username": "alice"}},
	}
	assert.Equal(t, "alice", resolver.Resolve(context.Background(), in))

	// Only token configured
	tokenOnly, _ := newTestResolver(t, decoder, SourceToken)
	in.Credential = ""
	assert.Equal(t, models.AnonymousActor, tokenOnly.Resolve(context.Background(), in))
}

func TestNewResolver_RejectsBadOrder(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := NewResolver(nil, Config{Order: []Source{"cookie"}}, logger)
	assert.Error(t, err)

	_, err = NewResolver(nil, Config{Order: []Source{SourceForm, SourceForm}}, logger)
	assert.Error(t, err)
}
