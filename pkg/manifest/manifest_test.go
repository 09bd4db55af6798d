package manifest

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "accessorgen.yaml")

	m, err := Load(path)
	require.NoError(t, err, "missing manifest loads as empty")
	require.Empty(t, m.Outputs)

	m.AddOutput(Output{Package: "models", File: "accessors_gen.go", Types: []string{"User"}})
	m.AddOutput(Output{Package: "models", File: "accessors_gen.go", Types: []string{"User", "Widget"}})
	require.Len(t, m.Outputs, 1, "same package and file replaces the entry")

	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "accessors_gen.go", got.OutputFile("models"))
	require.Equal(t, "", got.OutputFile("other"))
}
