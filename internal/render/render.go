package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aymerick/raymond"

	appLog "hellocal/internal/log"
	"hellocal/internal/model"
)

// ErrOutputExists is returned by Write when the output file exists and
// overwriting was not requested.
var ErrOutputExists = errors.New("render: output file already exists (use -force to replace)")

// TemplatePath returns <dir>/<template>.<lang>.html.
func TemplatePath(dir, template, lang string) string {
	return filepath.Join(dir, template+"."+lang+".html")
}

// OutputPath returns <dir>/<name>.html.
func OutputPath(dir, name string) string {
	return filepath.Join(dir, name+".html")
}

// Render executes the handlebars template at templatePath against the
// view's context.
func Render(view *model.CalendarView, templatePath string) (string, error) {
	source, err := os.ReadFile(templatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("render: template file not found: %s: %w", templatePath, err)
		}
		return "", fmt.Errorf("render: read template: %w", err)
	}
	return RenderString(view, string(source))
}

// RenderString executes a handlebars template source against the view.
func RenderString(view *model.CalendarView, source string) (string, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", fmt.Errorf("render: parse template: %w", err)
	}
	out, err := tpl.Exec(view.Context())
	if err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	return out, nil
}

// Write stores content at path. An existing file is only replaced when
// force is set.
func Write(path, content string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("render: output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("render: write output: %w", err)
	}

	appLog.Info("output written", "path", path, "bytes", len(content))
	return nil
}
