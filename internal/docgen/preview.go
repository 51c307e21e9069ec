package docgen

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
)

// previewWidth is the default wrap width for terminal previews.
const previewWidth = 100

// Preview renders a markdown file to w with terminal styling.
func Preview(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("docgen: read %s: %w", path, err)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return fmt.Errorf("docgen: renderer: %w", err)
	}

	out, err := renderer.RenderBytes(data)
	if err != nil {
		return fmt.Errorf("docgen: render %s: %w", path, err)
	}
	_, err = w.Write(out)
	return err
}
