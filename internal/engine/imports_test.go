package engine_test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The engine must stay free of the SQLite driver; storage is reached
// through progress.KV and Recorder.
func TestEngineDoesNotImportStore(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			if strings.HasSuffix(path, "/internal/store") || strings.HasPrefix(path, "modernc.org/sqlite") {
				t.Errorf("%s imports %s", name, path)
			}
		}
	}
}
