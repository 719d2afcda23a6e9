package classes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func byName(a, b Object) int { return strings.Compare(a.Name(), b.Name()) }

func TestSortedByOrdersDeterministically(t *testing.T) {
	im := NewInstanceMap(nil)
	for _, name := range []string{"c0", "a0", "b0"} {
		_, err := im.Add(&fakeObject{name: name}, false)
		require.NoError(t, err)
	}

	for i := 0; i < 5; i++ {
		sorted := im.SortedBy(byName)
		names := make([]string, len(sorted))
		for j, o := range sorted {
			names[j] = o.Name()
		}
		require.Equal(t, []string{"a0", "b0", "c0"}, names)
	}
}
