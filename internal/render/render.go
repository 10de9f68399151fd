package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/cpe/internal/security"
)

// Render executes one template against the theme.
func Render(t *Theme, name, text string) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(t.Funcs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, t); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// RenderPath renders input into outputDir. A file renders to a file of the
// same name; a directory renders each regular file directly inside it.
// It returns the paths written.
func RenderPath(t *Theme, input, outputDir string, logger hclog.Logger) ([]string, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("failed to access template path: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil { // #nosec G301 -- output dir for user config files
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if !info.IsDir() {
		out, err := renderFile(t, input, outputDir)
		if err != nil {
			return nil, err
		}
		logger.Debug("rendered template", "input", input, "output", out)
		return []string{out}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}

	var written []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		out, err := renderFile(t, filepath.Join(input, entry.Name()), outputDir)
		if err != nil {
			return written, err
		}
		logger.Debug("rendered template", "input", entry.Name(), "output", out)
		written = append(written, out)
	}
	return written, nil
}

func renderFile(t *Theme, path, outputDir string) (string, error) {
	dest, err := security.ValidateOutputPath(filepath.Base(path), outputDir)
	if err != nil {
		return "", err
	}

	text, err := os.ReadFile(path) // #nosec G304 -- user-specified template
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}

	out, err := Render(t, filepath.Base(path), string(text))
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(dest, out, 0o644); err != nil { // #nosec G306 -- rendered config files are not secret
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return dest, nil
}
