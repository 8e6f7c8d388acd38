package registry

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"enterprise-registry/internal/gateway"
	"enterprise-registry/internal/store"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", invalid("op", "bad"), KindValidation},
		{"conflict", conflict("op", "dup"), KindConflict},
		{"wrapped not found", wrap("op", fmt.Errorf("enterprise: %w", gateway.ErrNotFound)), KindNotFound},
		{"not connected", wrap("op", store.ErrNotConnected), KindStoreUnavailable},
		{"bad conn", driver.ErrBadConn, KindStoreUnavailable},
		{"connection exception", &pq.Error{Code: "08003"}, KindStoreUnavailable},
		{"unique violation", wrap("op", &pq.Error{Code: store.CodeUniqueViolation}), KindConflict},
		{"foreign key violation", wrap("op", &pq.Error{Code: store.CodeForeignKeyViolation}), KindStoreError},
		{"plain", errors.New("boom"), KindStoreError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsKindNil(t *testing.T) {
	assert.False(t, IsKind(nil, KindStoreError))
	assert.Nil(t, wrap("op", nil))
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Op: "create product", Kind: KindValidation, Msg: "product name is required"}
	assert.Equal(t, "create product: product name is required", err.Error())

	cause := errors.New("boom")
	err = &Error{Op: "list products", Kind: KindStoreError, Err: cause}
	assert.Equal(t, "list products: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "delete: not found", (&Error{Op: "delete", Kind: KindNotFound}).Error())
	assert.Equal(t, "store unavailable", KindStoreUnavailable.String())
}
