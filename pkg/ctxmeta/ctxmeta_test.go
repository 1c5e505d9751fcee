package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/jobboard/pkg/ctxmeta"
	"github.com/stretchr/testify/assert"
)

// field — пара With*/…FromContext для одного значения.
type field struct {
	name string
	put  func(context.Context, string) context.Context
	get  func(context.Context) (string, bool)
	key  any
}

var fields = []field{
	{"request_id", ctxmeta.WithRequestID, ctxmeta.RequestIDFromContext, ctxmeta.KeyRequestID},
	{"principal", ctxmeta.WithPrincipal, ctxmeta.PrincipalFromContext, ctxmeta.KeyPrincipal},
}

func TestFields_RoundTrip(t *testing.T) {
	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			parent := context.Background()
			ctx := f.put(parent, "alice-42")

			got, ok := f.get(ctx)
			assert.True(t, ok)
			assert.Equal(t, "alice-42", got)

			_, ok = f.get(parent)
			assert.False(t, ok, "родительский контекст не меняется")
		})
	}
}

func TestFields_EmptyValueIsAbsent(t *testing.T) {
	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			parent := context.Background()
			assert.Equal(t, parent, f.put(parent, ""), "пустое значение не кладётся")

			stored := context.WithValue(parent, f.key, "")
			got, ok := f.get(stored)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestFields_NilContext(t *testing.T) {
	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			var nilCtx context.Context
			assert.Nil(t, f.put(nilCtx, "x"))
			_, ok := f.get(nilCtx)
			assert.False(t, ok)
		})
	}
}

func TestFields_ForeignKeyIgnored(t *testing.T) {
	// строковый ключ с тем же текстом не совпадает с типизированным
	ctx := context.WithValue(context.Background(), "request_id", "req-1") //nolint:staticcheck // проверяем именно строковый ключ
	_, ok := ctxmeta.RequestIDFromContext(ctx)
	assert.False(t, ok)
}

func TestFields_Independent(t *testing.T) {
	ctx := ctxmeta.WithPrincipal(ctxmeta.WithRequestID(context.Background(), "req-1"), "alice")

	id, _ := ctxmeta.RequestIDFromContext(ctx)
	who, _ := ctxmeta.PrincipalFromContext(ctx)
	assert.Equal(t, "req-1", id)
	assert.Equal(t, "alice", who)
}
