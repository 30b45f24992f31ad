package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Transform rewrites a stylesheet's text.
type Transform func(css string) (string, error)

// Result records the outcome of one file in a batch run.
type Result struct {
	Path     string
	BytesIn  int
	BytesOut int
	Output   string // transformed text, kept when not writing in place
	Err      error
}

// Run applies fn to every file. With write set, changed files are
// rewritten in place; otherwise the transformed text is kept on each
// Result for the caller to print. Per-file failures do not stop the run:
// they are recorded on the Result and aggregated into the returned error.
func Run(files []string, fn Transform, write bool, log *zap.Logger) ([]Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	results := make([]Result, 0, len(files))
	var errs error

	for _, file := range files {
		res := Result{Path: file}

		// os errors already name the file; transform errors do not.
		data, err := os.ReadFile(file)
		if err != nil {
			res.Err = err
			errs = multierr.Append(errs, err)
			results = append(results, res)
			continue
		}
		res.BytesIn = len(data)

		out, err := fn(string(data))
		if err != nil {
			res.Err = err
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", file, err))
			results = append(results, res)
			continue
		}
		res.BytesOut = len(out)

		if !write {
			res.Output = out
			results = append(results, res)
			continue
		}

		if out != string(data) {
			if err := os.WriteFile(file, []byte(out), 0644); err != nil {
				res.Err = err
				errs = multierr.Append(errs, err)
				results = append(results, res)
				continue
			}
		}
		log.Debug("rewrote file",
			zap.String("path", file),
			zap.Int("bytes_in", res.BytesIn),
			zap.Int("bytes_out", res.BytesOut))
		results = append(results, res)
	}

	return results, errs
}

// WriteOutput writes content to path, creating parent directories as
// needed.
func WriteOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
