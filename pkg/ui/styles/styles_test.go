package styles_test

import (
	"testing"

	"github.com/arthur-debert/unified-scanner/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoaded(t *testing.T) {
	for _, name := range []string{
		"Header", "SubHeader", "ProjectName", "ProjectType",
		"Success", "Error", "Warning", "Info", "Muted",
		"FilePath", "Label", "Bold", "ErrorBadge", "Indent",
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := styles.StyleRegistry[name]
			assert.True(t, ok, "style %s should be registered", name)
		})
	}
}

func TestStyleAttributes(t *testing.T) {
	assert.True(t, styles.GetStyle("Header").GetBold())
	assert.True(t, styles.GetStyle("ProjectType").GetItalic())
	assert.True(t, styles.GetStyle("FilePath").GetUnderline())
	assert.Equal(t, 18, styles.GetStyle("Label").GetWidth())
	assert.Equal(t, 2, styles.GetStyle("Indent").GetMarginLeft())
}

func TestGetStyle_Unknown(t *testing.T) {
	style := styles.GetStyle("DoesNotExist")
	assert.Equal(t, "plain", style.Render("plain"))
}

func TestLoadStylesFromData(t *testing.T) {
	original := styles.StyleRegistry
	t.Cleanup(func() { styles.StyleRegistry = original })

	err := styles.LoadStylesFromData([]byte(`
colors:
  red:
    light: "#ff0000"
    dark: "#ff0000"
styles:
  Alert:
    bold: true
    foreground: red
`))
	require.NoError(t, err)
	assert.Len(t, styles.StyleRegistry, 1)
	assert.True(t, styles.GetStyle("Alert").GetBold())

	err = styles.LoadStylesFromData([]byte("styles: [unclosed"))
	assert.Error(t, err)
	assert.Len(t, styles.StyleRegistry, 1, "a failed load keeps the previous registry")
}
