package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/creditgen/internal/domain/insights"
	"gopkg.in/yaml.v3"
)

// WriteInsights writes the run summary as a YAML document.
func WriteInsights(path string, in insights.Insights) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir for %q: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", path, cerr)
		}
	}()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(in); err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}
	return enc.Close()
}
