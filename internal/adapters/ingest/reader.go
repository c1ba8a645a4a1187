// Package ingest reads the NDJSON inputs and writes the rating reports.
//
// A missing or unreadable file is fatal to a run. A malformed line
// inside an otherwise-good file is logged, counted, and skipped.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pitchsix/cragrank/internal/domain/model"
	"github.com/pitchsix/cragrank/pkg/logger"
	"github.com/pitchsix/cragrank/pkg/metrics"
)

// Scanner limits for a single input line.
const (
	initialLineBytes = 64 * 1024
	maxLineBytes     = 4 * 1024 * 1024
)

// ReadRoutes loads the route reference file.
func ReadRoutes(ctx context.Context, path string) ([]model.Route, error) {
	var out []model.Route
	err := readLines(ctx, path, "route", func(raw []byte) error {
		var r model.Route
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadTicks loads the tick log. With WithDedupe, exact duplicate rows
// (as re-served by paginated scrapes) are suppressed; legitimate
// repeat attempts normally differ in notes or timestamp and survive.
func ReadTicks(ctx context.Context, path string, opts ...TickOption) ([]model.Tick, error) {
	var s tickSettings
	for _, opt := range opts {
		opt(&s)
	}

	var seen map[string]struct{}
	if s.dedupe {
		seen = make(map[string]struct{})
	}

	var out []model.Tick
	err := readLines(ctx, path, "tick", func(raw []byte) error {
		if seen != nil && len(seen) < s.dedupeLimit {
			key := string(raw)
			if _, dup := seen[key]; dup {
				metrics.RecordDuplicateTick()
				return nil
			}
			seen[key] = struct{}{}
		}
		var t model.Tick
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordTicksRead(len(out))
	return out, nil
}

// readLines streams the file line by line. decode errors skip the
// line; I/O errors abort.
func readLines(ctx context.Context, path, kind string, decode func([]byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s file: %w", kind, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	log := logger.Get().Named("ingest")
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, initialLineBytes), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := decode(raw); err != nil {
			metrics.RecordMalformedLine()
			log.Warn(ctx, "skipping malformed line",
				logger.String("kind", kind),
				logger.Int("line", line),
				logger.Error(err),
			)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s file: %w", kind, err)
	}
	return nil
}
