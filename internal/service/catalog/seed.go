package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/pkg/log"
	"gopkg.in/yaml.v3"
)

// SeedFile is the document accepted by Seed.
type SeedFile struct {
	Events  []core.Event  `json:"events" yaml:"events"`
	Figures []core.Figure `json:"figures" yaml:"figures"`
}

type SeedReport struct {
	EventsAdded  int
	FiguresAdded int
	Skipped      int
}

// DecodeSeed reads a seed document. JSON is used for a ".json" name, YAML
// otherwise.
func DecodeSeed(r io.Reader, name string) (*SeedFile, error) {
	var doc SeedFile
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode json seed: %w", err)
		}
		return &doc, nil
	}

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode yaml seed: %w", err)
	}
	return &doc, nil
}

// SeedFromFile loads path and inserts its records.
func (s *Service) SeedFromFile(ctx context.Context, path string) (SeedReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedReport{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	doc, err := DecodeSeed(f, path)
	if err != nil {
		return SeedReport{}, err
	}
	return s.Seed(ctx, doc)
}

// Seed inserts every record of doc, skipping ones that already exist.
// Any other failure stops the run.
func (s *Service) Seed(ctx context.Context, doc *SeedFile) (SeedReport, error) {
	logger := log.FromCtx(ctx)
	var report SeedReport

	for _, e := range doc.Events {
		_, err := s.AddEvent(ctx, e)
		switch {
		case err == nil:
			report.EventsAdded++
		case errors.Is(err, core.ErrConflict):
			report.Skipped++
			logger.Debug().Str("title", e.Title).Msg("event exists, skipping")
		default:
			return report, fmt.Errorf("failed to seed event %q: %w", e.Title, err)
		}
	}

	for _, f := range doc.Figures {
		_, err := s.AddFigure(ctx, f)
		switch {
		case err == nil:
			report.FiguresAdded++
		case errors.Is(err, core.ErrConflict):
			report.Skipped++
			logger.Debug().Str("name", f.Name).Msg("figure exists, skipping")
		default:
			return report, fmt.Errorf("failed to seed figure %q: %w", f.Name, err)
		}
	}

	return report, nil
}
