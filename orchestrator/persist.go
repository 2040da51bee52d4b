package orchestrator

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	cfg "github.com/maastricht-university/ami-topics/config"
)

// Encode writes v to w in the configured output format.
func Encode(w io.Writer, out cfg.Output, v any) error {
	switch out.Format {
	case cfg.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case cfg.FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", out.Indent)
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", out.Format)
	}
}

func writeFile(path string, out cfg.Output, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, out, v); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// WriteMeeting writes the topic forest of res to <outputs>/<meeting>.<format>
// and returns the path.
func (p *Pipeline) WriteMeeting(res *MeetingResult) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Outputs, 0o755); err != nil {
		return "", err
	}
	ext := p.cfg.Output.Format
	if ext == "" {
		ext = cfg.FormatJSON
	}
	path := filepath.Join(p.cfg.Paths.Outputs, res.MeetingID+"."+ext)
	if err := writeFile(path, p.cfg.Output, res.Topics); err != nil {
		return "", err
	}
	return path, nil
}

// writeManifest records a batch run next to its outputs. It is always JSON.
func (p *Pipeline) writeManifest(res *BatchResult) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Outputs, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(p.cfg.Paths.Outputs, ManifestName)
	if err := writeFile(path, cfg.Output{Format: cfg.FormatJSON, Indent: "  "}, res); err != nil {
		return "", err
	}
	return path, nil
}
