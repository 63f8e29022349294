package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfDirectAndWrapped(t *testing.T) {
	err := New(KindConflict, "exam already attempted")
	assert.Equal(t, KindConflict, KindOf(err))

	wrapped := fmt.Errorf("starting attempt: %w", err)
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindConflict))
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("connection reset")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := Wrap(KindInternal, "failed to load attempt", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to load attempt")
	assert.Contains(t, err.Error(), "driver: bad connection")
}
