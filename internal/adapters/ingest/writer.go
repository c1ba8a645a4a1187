package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// WriteRatings writes records as a JSON array: bracketed, one compact
// record per line. Re-running over the same records yields identical
// bytes.
func WriteRatings[T any](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	w := bufio.NewWriter(f)
	if _, err := w.WriteString("[\n"); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return fmt.Errorf("write output file: %w", err)
	}
	for i, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			f.Close() //nolint:errcheck,gosec // already failing
			return fmt.Errorf("encode record: %w", err)
		}
		if i > 0 {
			if _, err := w.WriteString(",\n"); err != nil {
				f.Close() //nolint:errcheck,gosec // already failing
				return fmt.Errorf("write output file: %w", err)
			}
		}
		if _, err := w.Write(b); err != nil {
			f.Close() //nolint:errcheck,gosec // already failing
			return fmt.Errorf("write output file: %w", err)
		}
	}
	if _, err := w.WriteString("\n]\n"); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return fmt.Errorf("write output file: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return fmt.Errorf("flush output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

// WriteNDJSON writes records one JSON object per line, the input
// format consumed by the readers. Used by the fetcher and generator.
func WriteNDJSON[T any](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			f.Close() //nolint:errcheck,gosec // already failing
			return fmt.Errorf("encode record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return fmt.Errorf("flush output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}
