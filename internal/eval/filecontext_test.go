package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lagopus-go/dsinterp/internal/command"
	"github.com/lagopus-go/dsinterp/internal/interpstate"
)

func TestCurrentFileContextDefaultsToUnknown(t *testing.T) {
	ev := New(command.New(), func() interpstate.State { return interpstate.AutoCommit })
	require.Equal(t, FileContext{}, ev.CurrentFileContext())
	require.Equal(t, "Unknown", ev.CurrentFileContext().ConfigType.String())
}

func TestCurrentFileContextReportsWiredHook(t *testing.T) {
	ev := New(command.New(), func() interpstate.State { return interpstate.AutoCommit })
	ev.FileContext = func() FileContext {
		return FileContext{Filename: "bridge.conf", Lineno: 12, ConfigType: ConfigTypeFile}
	}

	got := ev.CurrentFileContext()
	require.Equal(t, "bridge.conf", got.Filename)
	require.Equal(t, 12, got.Lineno)
	require.Equal(t, "File", got.ConfigType.String())
}
