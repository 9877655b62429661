package errorsx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndReason(t *testing.T) {
	err := Wrap(assertErr{}, ReasonLLMRequest)
	require.Equal(t, ReasonLLMRequest, Reason(err))
	require.True(t, HasReason(err, ReasonLLMRequest))
}

func TestWrapPreservesExistingReason(t *testing.T) {
	first := Wrap(assertErr{}, ReasonToolInvocation)
	second := Wrap(fmt.Errorf("query: %w", first), ReasonLLMRequest)
	require.Equal(t, ReasonToolInvocation, Reason(second))
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(nil, ReasonBusy))
	require.Equal(t, ReasonUnknown, Reason(nil))
	require.Equal(t, ReasonUnknown, Reason(errors.New("plain")))
}

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := Wrap(fmt.Errorf("ctx: %w", sentinel), ReasonConnect)
	require.ErrorIs(t, err, sentinel)
}

func TestUserMessage(t *testing.T) {
	require.Empty(t, UserMessage(nil))
	require.Equal(t, "Error: boom", UserMessage(Wrap(assertErr{}, ReasonToolInvocation)))
	require.Contains(t, UserMessage(Wrap(assertErr{}, ReasonNotConnected)), "Not connected")
	require.Contains(t, UserMessage(Wrap(assertErr{}, ReasonBusy)), "still running")
	require.Contains(t, UserMessage(Wrap(assertErr{}, ReasonCanceled)), "timed out")
}

func TestWrapf(t *testing.T) {
	require.NoError(t, Wrapf(nil, ReasonConnect, "connect %s", "a.py"))

	err := Wrapf(assertErr{}, ReasonConnect, "connect %s", "a.py")
	require.EqualError(t, err, "connect a.py: boom")
	require.Equal(t, ReasonConnect, Reason(err))
	require.ErrorIs(t, err, assertErr{})

	inner := Wrap(assertErr{}, ReasonUnsupportedTarget)
	require.Equal(t, ReasonUnsupportedTarget, Reason(Wrapf(inner, ReasonConnect, "connect")))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
