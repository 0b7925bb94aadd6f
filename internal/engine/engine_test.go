package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/nameswap/internal/clock"
	"github.com/danieljhkim/nameswap/internal/config"
	"github.com/danieljhkim/nameswap/internal/fsops"
	"github.com/danieljhkim/nameswap/internal/journal"
	"github.com/danieljhkim/nameswap/internal/planner"
)

// testEnv is an engine over a real temp directory.
type testEnv struct {
	work  string
	paths *config.Paths
	store *journal.FileStore
	hook  *logtest.Hook
	eng   *Engine
}

// newTestEnv creates an engine working in a fresh temp tree. fs wraps the
// real filesystem when non-nil.
func newTestEnv(t *testing.T, fs fsops.FS, mutate func(*config.Settings)) *testEnv {
	t.Helper()

	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	work := filepath.Join(tmp, "work")
	require.NoError(t, os.MkdirAll(work, 0755))

	if fs == nil {
		fs = fsops.NewRealFS()
	}

	settings := config.DefaultSettings()
	settings.BaseDir = work
	settings.LockTimeout = 200 * time.Millisecond
	if mutate != nil {
		mutate(settings)
	}

	paths := config.PathsAt(filepath.Join(tmp, ".nameswap"))
	store := journal.NewFileStore(fs, paths.Journal)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	clk := clock.NewStepClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), time.Second)

	return &testEnv{
		work:  work,
		paths: paths,
		store: store,
		hook:  hook,
		eng:   New(fs, store, clk, logger, *settings, *paths),
	}
}

// path returns the absolute path of rel inside the work tree.
func (env *testEnv) path(rel string) string {
	return filepath.Join(env.work, filepath.FromSlash(rel))
}

// write creates the given entries. Names ending in "/" are directories, the
// rest are files whose content is their own relative path.
func (env *testEnv) write(t *testing.T, entries ...string) {
	t.Helper()
	for _, entry := range entries {
		if strings.HasSuffix(entry, "/") {
			require.NoError(t, os.MkdirAll(env.path(entry), 0755))
			continue
		}
		full := env.path(entry)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(entry), 0644))
	}
}

// requireFile asserts rel is a file holding content.
func (env *testEnv) requireFile(t *testing.T, rel, content string) {
	t.Helper()
	data, err := os.ReadFile(env.path(rel))
	require.NoError(t, err, "expected file %s", rel)
	require.Equal(t, content, string(data), "content of %s", rel)
}

// requireDir asserts rel is a directory.
func (env *testEnv) requireDir(t *testing.T, rel string) {
	t.Helper()
	info, err := os.Stat(env.path(rel))
	require.NoError(t, err, "expected directory %s", rel)
	require.True(t, info.IsDir(), "%s is not a directory", rel)
}

// requireAbsent asserts rel does not exist.
func (env *testEnv) requireAbsent(t *testing.T, rel string) {
	t.Helper()
	_, err := os.Lstat(env.path(rel))
	require.True(t, os.IsNotExist(err), "expected %s to be absent, got err = %v", rel, err)
}

// requireNoStaging asserts no staging name is left in dir.
func (env *testEnv) requireNoStaging(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(env.path(dir))
	require.NoError(t, err)
	for _, entry := range entries {
		require.False(t, planner.IsStagingName(entry.Name()), "staging entry left behind: %s", entry.Name())
	}
}

// faultyFS fails the failAt-th rename (1-based) with err.
type faultyFS struct {
	fsops.FS
	failAt int
	err    error
	calls  int
}

func newFaultyFS(failAt int, err error) *faultyFS {
	return &faultyFS{FS: fsops.NewRealFS(), failAt: failAt, err: err}
}

func (f *faultyFS) Rename(oldpath, newpath string) error {
	f.calls++
	if f.calls == f.failAt {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: f.err}
	}
	return f.FS.Rename(oldpath, newpath)
}
