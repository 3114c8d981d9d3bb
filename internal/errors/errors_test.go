package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct {
	code string
}

func (e *codedError) Error() string { return e.code }

func TestAsType(t *testing.T) {
	err := Wrap(WithStack(&codedError{code: "USER_NOT_FOUND"}), "get user")

	coded, ok := AsType[*codedError](err)
	require.True(t, ok)
	assert.Equal(t, "USER_NOT_FOUND", coded.code)

	_, ok = AsType[*codedError](New("plain"))
	assert.False(t, ok)
}

func TestWrapKeepsChainAndStack(t *testing.T) {
	sentinel := New("sentinel")
	err := Wrapf(sentinel, "update %s", "user")

	assert.True(t, Is(err, sentinel))
	assert.Equal(t, "update user: sentinel", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "TestWrapKeepsChainAndStack")
}
