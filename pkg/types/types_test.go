package types_test

import (
	"testing"

	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestStringSet(t *testing.T) {
	s := types.NewStringSet(".go", ".py")
	s.Add(".rs")

	assert.True(t, s.Has(".go"))
	assert.True(t, s.Has(".rs"))
	assert.False(t, s.Has(".GO"), "membership is case-sensitive")
	assert.Equal(t, []string{".go", ".py", ".rs"}, s.Sorted())

	s.Union(types.NewStringSet(".py", ".vue"))
	assert.Equal(t, []string{".go", ".py", ".rs", ".vue"}, s.Sorted())
}

func TestStringSet_CloneIsIndependent(t *testing.T) {
	orig := types.NewStringSet("a")
	clone := orig.Clone()
	clone.Add("b")

	assert.False(t, orig.Has("b"))
	assert.True(t, clone.Has("a"))
}

func TestProjectConfig_Clone(t *testing.T) {
	cfg := &types.ProjectConfig{
		Name:             "demo",
		CodeExtensions:   types.NewStringSet(".go"),
		ConfigFiles:      types.NewStringSet("go.mod"),
		IgnoreDirs:       types.NewStringSet("vendor"),
		IgnoreFiles:      types.NewStringSet("*.log"),
		IgnoreExtensions: types.NewStringSet(".exe"),
		TargetSubdirs:    types.NewStringSet("cmd"),
		MaxFileSize:      10,
	}

	clone := cfg.Clone()
	clone.IgnoreDirs.Add("node_modules")
	clone.CodeExtensions.Add(".rs")
	clone.MaxFileSize = 20

	assert.False(t, cfg.IgnoreDirs.Has("node_modules"))
	assert.False(t, cfg.CodeExtensions.Has(".rs"))
	assert.Equal(t, int64(10), cfg.MaxFileSize)
}

func TestScanStats_Add(t *testing.T) {
	total := types.ScanStats{FilesProcessed: 1, FilesSkipped: 2, TotalSize: 3, Errors: 4}
	total.Add(types.ScanStats{FilesProcessed: 10, FilesSkipped: 20, TotalSize: 30, Errors: 40})

	assert.Equal(t, types.ScanStats{FilesProcessed: 11, FilesSkipped: 22, TotalSize: 33, Errors: 44}, total)
}

func TestProject_GetFilePath(t *testing.T) {
	p := types.Project{Name: "app", Path: "/in/app"}
	assert.Equal(t, "/in/app/.gitignore", p.GetFilePath(".gitignore"))
}
