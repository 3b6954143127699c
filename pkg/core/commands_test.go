package core

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/filesystem"
	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInput(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/in", 0755))
	for name, content := range files {
		p := filepath.Join("/in", name)
		require.NoError(t, fsys.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, fsys.WriteFile(p, []byte(content), 0644))
	}
	return fsys
}

func readOutput(t *testing.T, fsys types.FS, project string) string {
	t.Helper()
	data, err := fsys.ReadFile(filepath.Join("/out", OutputFileName(project)))
	require.NoError(t, err)
	return string(data)
}

func exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

func TestScanProjects_MissingInputIsCreated(t *testing.T) {
	fsys := filesystem.NewMemory()

	result, err := ScanProjects(ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInputCreated))
	assert.True(t, exists(fsys, "/in"))
	assert.False(t, exists(fsys, "/out"))
}

func TestScanProjects_EmptyInput(t *testing.T) {
	fsys := setupInput(t, map[string]string{"loose-file.txt": "not a project"})

	result, err := ScanProjects(ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoProjects))
	assert.False(t, exists(fsys, "/out"), "no output directory is created")
}

func TestScanProjects_InputIsAFile(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.WriteFile("/in", []byte("x"), 0644))

	_, err := ScanProjects(ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestScanProjects_ScansEveryProject(t *testing.T) {
	fsys := setupInput(t, map[string]string{
		"api/go.mod":         "module api\n",
		"api/main.go":        "package main\n",
		"web/package.json":   "{}",
		"web/src/index.js":   "console.log(1)\n",
		"web/node_modules/a": "x",
	})

	var seen []string
	result, err := ScanProjects(ScanProjectsOptions{
		InputDir:  "/in",
		OutputDir: "/out",
		FS:        fsys,
		OnProject: func(pr types.ProjectResult) { seen = append(seen, pr.Name) },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"api", "web"}, seen)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, "success", result.Status())

	require.Len(t, result.Projects, 2)
	api, web := result.Projects[0], result.Projects[1]
	assert.Equal(t, "go", api.ProjectType)
	assert.Equal(t, []string{"go"}, api.Labels)
	assert.Equal(t, "/out/api_unified_scan.txt", api.OutputPath)
	assert.Equal(t, 2, api.Stats.FilesProcessed)
	assert.Equal(t, "nodejs", web.ProjectType)
	assert.Equal(t, 2, web.Stats.FilesProcessed)

	assert.Equal(t, types.ScanStats{
		FilesProcessed: 4,
		TotalSize:      api.Stats.TotalSize + web.Stats.TotalSize,
	}, result.Totals)

	out := readOutput(t, fsys, "api")
	assert.Contains(t, out, " Project: api\n Type: go\n")
	assert.Contains(t, out, "--- main.go ---")
	assert.NotContains(t, readOutput(t, fsys, "web"), "node_modules")
}

// faultyFS breaks or panics on selected directories
type faultyFS struct {
	types.FS
	failDir  string
	panicDir string
}

func (f *faultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == f.panicDir {
		panic("simulated crash")
	}
	if name == f.failDir {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return f.FS.ReadDir(name)
}

func TestScanProjects_FailingProjectDoesNotStopRun(t *testing.T) {
	fsys := &faultyFS{
		FS: setupInput(t, map[string]string{
			"bad/main.go":  "package main\n",
			"good/main.go": "package main\n",
		}),
		failDir: "/in/bad",
	}

	result, err := ScanProjects(ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, "partial", result.Status())
	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "bad", failed[0].Name)
	assert.True(t, errors.IsErrorCode(failed[0].Err, errors.ErrProjectScan))
	assert.Contains(t, failed[0].Error, "permission denied")

	assert.True(t, exists(fsys, "/out/good_unified_scan.txt"))
	assert.False(t, exists(fsys, "/out/bad_unified_scan.txt"))
	assert.False(t, exists(fsys, "/out/bad_unified_scan.txt.tmp"))

	entries, err := fsys.ReadDir("/out")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "exactly one output file")
	assert.Equal(t, 1, result.Totals.FilesProcessed)
}

func TestScanProjects_PanickingProjectIsRecovered(t *testing.T) {
	fsys := &faultyFS{
		FS: setupInput(t, map[string]string{
			"boom/main.go": "package main\n",
			"fine/main.go": "package main\n",
		}),
		panicDir: "/in/boom",
	}

	result, err := ScanProjects(ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys})
	require.NoError(t, err)

	require.Len(t, result.Projects, 2)
	assert.False(t, result.Projects[0].Success)
	assert.True(t, errors.IsErrorCode(result.Projects[0].Err, errors.ErrProjectPanic))
	assert.Contains(t, result.Projects[0].Error, "simulated crash")
	assert.True(t, result.Projects[1].Success)
	assert.False(t, exists(fsys, "/out/boom_unified_scan.txt.tmp"))
}

func TestScanProjects_NoProjectScanned(t *testing.T) {
	fsys := &faultyFS{
		FS:      setupInput(t, map[string]string{"only/main.go": "package main\n"}),
		failDir: "/in/only",
	}

	result, err := ScanProjects(ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoProjectsScanned))
	require.NotNil(t, result)
	assert.Equal(t, "failed", result.Status())
	assert.Len(t, result.Projects, 1)
}

func TestScanProjects_Override(t *testing.T) {
	fsys := setupInput(t, map[string]string{
		"web/package.json":         "{}",
		"web/.eslintrc.js":         "module.exports = {}\n",
		"web/.scanner-config.json": `{"include_hidden": true, "ignore_dirs": ["fixtures"]}`,
		"web/fixtures/big.js":      "x",
		"cli/main.go":              "package main\n",
		"cli/.scanner-config.json": `{"max_file_size": "large"`,
	})

	result, err := ScanProjects(ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys})
	require.NoError(t, err)
	require.Len(t, result.Projects, 2)

	cli, web := result.Projects[0], result.Projects[1]
	assert.True(t, cli.Success, "a broken override falls back to the defaults")
	assert.Empty(t, cli.CustomConfig)

	assert.Equal(t, "/in/web/.scanner-config.json", web.CustomConfig)
	out := readOutput(t, fsys, "web")
	assert.Contains(t, out, "--- .eslintrc.js ---")
	assert.NotContains(t, out, "big.js")
}

func TestScanProjects_Lock(t *testing.T) {
	fsys := setupInput(t, map[string]string{"p/main.go": "package main\n"})
	lockPath := filepath.Join(t.TempDir(), "run.lock")

	held := flock.New(lockPath)
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	_, err = ScanProjects(ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys, LockPath: lockPath})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLocked))
	assert.False(t, exists(fsys, "/out"))

	require.NoError(t, held.Unlock())
	result, err := ScanProjects(ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys, LockPath: lockPath})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
}

func TestScanProjects_RerunIsByteIdentical(t *testing.T) {
	fsys := setupInput(t, map[string]string{
		"app/go.mod":          "module app\n",
		"app/cmd/run/main.go": "package main\n",
		"app/internal/x.go":   "package internal\n",
	})
	opts := ScanProjectsOptions{InputDir: "/in", OutputDir: "/out", FS: fsys}

	_, err := ScanProjects(opts)
	require.NoError(t, err)
	first := readOutput(t, fsys, "app")

	_, err = ScanProjects(opts)
	require.NoError(t, err)
	assert.Equal(t, first, readOutput(t, fsys, "app"))
}

func TestDetectProject(t *testing.T) {
	fsys := setupInput(t, map[string]string{
		"svc/go.mod":     "module svc\n",
		"svc/main.go":    "package main\n",
		"svc/Dockerfile": "FROM scratch\n",
	})

	result, err := DetectProject(DetectProjectOptions{Dir: "/in/svc", FS: fsys})
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "docker"}, result.Labels)
	assert.Equal(t, "go", result.ProjectType)
	assert.Equal(t, []string{"cmd", "internal", "pkg"}, result.TargetSubdirs)
	require.Len(t, result.Detections, 2)
	assert.Equal(t, []string{"go.mod", "main.go"}, result.Detections[0].Markers)
	assert.Empty(t, result.CustomConfig)
}

func TestDetectProject_Errors(t *testing.T) {
	fsys := setupInput(t, map[string]string{"file.txt": "x"})

	_, err := DetectProject(DetectProjectOptions{Dir: "/in/missing", FS: fsys})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = DetectProject(DetectProjectOptions{Dir: "/in/file.txt", FS: fsys})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestLockPathFor(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	a, err := LockPathFor("/data/out")
	require.NoError(t, err)
	b, err := LockPathFor("/data/out/")
	require.NoError(t, err)
	c, err := LockPathFor("/data/other")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasSuffix(a, ".lock"))
}
