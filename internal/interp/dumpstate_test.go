package interp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDumpStateYAMLReportsModeAndObjects(t *testing.T) {
	ip, _, _ := newTestInterp(t)

	out, err := ip.DumpStateYAML()
	require.NoError(t, err)

	var got yamlSnapshot
	require.NoError(t, yaml.Unmarshal(out, &got))
	require.Equal(t, "AutoCommit", got.State)
	require.Equal(t, []string{"bridge br0"}, got.Objects)
}

func TestDumpStateYAMLReflectsAtomicState(t *testing.T) {
	ip, _, _ := newTestInterp(t)
	require.NoError(t, ip.AtomicBegin("cli"))

	out, err := ip.DumpStateYAML()
	require.NoError(t, err)

	var got yamlSnapshot
	require.NoError(t, yaml.Unmarshal(out, &got))
	require.Equal(t, "Atomic", got.State)
}
