package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfirmPromptAssumeYes(t *testing.T) {
	adapter := NewConfirmPromptAdapter(true)
	adapter.Interactive = func(int) bool {
		t.Fatal("terminal must not be probed when confirmation is assumed")
		return false
	}

	confirmed, err := adapter.Confirm(t.Context(), "Delete 3 cookbook versions?")
	require.NoError(t, err)
	require.True(t, confirmed)
}

func TestConfirmPromptDeclinesWithoutTerminal(t *testing.T) {
	input, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = input.Close() })

	adapter := ConfirmPromptAdapter{Input: input}
	confirmed, err := adapter.Confirm(t.Context(), "Delete 3 cookbook versions?")
	require.NoError(t, err)
	require.False(t, confirmed)
}
