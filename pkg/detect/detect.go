// Package detect classifies a project directory by the marker files and
// directories it contains.
package detect

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/unified-scanner/pkg/logging"
	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
)

// Detector names a project type and the markers that signal it
type Detector struct {
	Label   string
	Markers []string
}

// detectors is ordered: the first detected label becomes the project type.
var detectors = []Detector{
	{"nodejs", []string{"package.json", "node_modules"}},
	{"python", []string{"requirements.txt", "setup.py", "pyproject.toml", "Pipfile", "__pycache__"}},
	{"django", []string{"manage.py", "settings.py", "wsgi.py"}},
	{"react", []string{"package.json", "src/App.jsx", "src/App.tsx", "public/index.html"}},
	{"nextjs", []string{"next.config.js", "next.config.mjs", "pages", "app"}},
	{"vue", []string{"package.json", "vue.config.js", "src/App.vue"}},
	{"angular", []string{"package.json", "angular.json", "src/app"}},
	{"java", []string{"pom.xml", "build.gradle", "gradlew", "src/main/java"}},
	{"maven", []string{"pom.xml", "mvnw"}},
	{"gradle", []string{"build.gradle", "settings.gradle", "gradlew"}},
	{"spring", []string{"pom.xml", "application.properties", "application.yml"}},
	{"rust", []string{"Cargo.toml", "Cargo.lock", "src/main.rs"}},
	{"go", []string{"go.mod", "go.sum", "main.go"}},
	{"dotnet", []string{".csproj", ".sln", ".fsproj", ".vbproj"}},
	{"php", []string{"composer.json", "index.php", "artisan"}},
	{"laravel", []string{"composer.json", "artisan", "app/Http"}},
	{"ruby", []string{"Gemfile", "Rakefile", ".rb"}},
	{"rails", []string{"Gemfile", "Rakefile", "config/application.rb"}},
	{"flutter", []string{"pubspec.yaml", "lib/main.dart", "android", "ios"}},
	{"docker", []string{"Dockerfile", "docker-compose.yml"}},
}

// Detectors returns a copy of the detection table in evaluation order
func Detectors() []Detector {
	out := make([]Detector, len(detectors))
	for i, d := range detectors {
		out[i] = Detector{Label: d.Label, Markers: append([]string(nil), d.Markers...)}
	}
	return out
}

// Classify returns every detected label in table order, or the generic
// type when nothing matches.
func Classify(fsys types.FS, dir string) []string {
	var labels []string
	for _, d := range Matches(fsys, dir) {
		labels = append(labels, d.Label)
	}
	if len(labels) == 0 {
		return []string{types.GenericType}
	}
	return labels
}

// Matches evaluates the detection table against dir. A marker matches when
// it exists directly under dir or, if it contains a wildcard, when it
// matches anywhere in the subtree. Filesystem errors count as no match.
func Matches(fsys types.FS, dir string) []types.Detection {
	logger := logging.GetLogger("detect")

	var found []types.Detection
	for _, d := range detectors {
		var matched []string
		for _, marker := range d.Markers {
			if markerMatches(fsys, dir, marker) {
				matched = append(matched, marker)
			}
		}
		if len(matched) > 0 {
			logger.Trace().
				Str("dir", dir).
				Str("label", d.Label).
				Strs("markers", matched).
				Msg("Project type detected")
			found = append(found, types.Detection{Label: d.Label, Markers: matched})
		}
	}
	return found
}

func markerMatches(fsys types.FS, dir, marker string) bool {
	if _, err := fsys.Stat(filepath.Join(dir, filepath.FromSlash(marker))); err == nil {
		return true
	}
	if strings.Contains(marker, "*") {
		return globSubtree(fsys, dir, "**/"+marker)
	}
	return false
}

// globSubtree walks dir depth-first and reports whether any entry's
// slash-separated relative path matches pattern.
func globSubtree(fsys types.FS, dir, pattern string) bool {
	var walk func(abs, rel string) bool
	walk = func(abs, rel string) bool {
		entries, err := fsys.ReadDir(abs)
		if err != nil {
			return false
		}
		for _, entry := range entries {
			childRel := path.Join(rel, entry.Name())
			if ok, _ := doublestar.Match(pattern, childRel); ok {
				return true
			}
			if entry.IsDir() && walk(filepath.Join(abs, entry.Name()), childRel) {
				return true
			}
		}
		return false
	}
	return walk(dir, "")
}
