package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windlant/mcp-client/internal/tools"
)

func echo(_ context.Context, args tools.ToolArguments) (string, error) {
	s, _ := args["text"].(string)
	return s, nil
}

func TestRegisterAndList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Definition{Name: "b", Function: echo}))
	require.NoError(t, r.Register(Definition{Name: "a", Description: "first", Function: echo}))

	defs := r.ListAll()
	require.Len(t, defs, 2)
	require.Equal(t, "a", defs[0].Name)
	require.Equal(t, "b", defs[1].Name)

	def, ok := r.Get("a")
	require.True(t, ok)
	require.Equal(t, "first", def.Descriptor().Description)

	_, ok = r.Get("missing")
	require.False(t, ok)
}

func TestRegisterRejects(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, r.Register(Definition{}), ErrEmptyName)
	require.NoError(t, r.Register(Definition{Name: "a"}))
	require.ErrorIs(t, r.Register(Definition{Name: "a"}), ErrAlreadyExists)
}
