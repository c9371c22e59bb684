// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Supported artifact formats.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// LoaderConfig locates the artifacts on disk.
type LoaderConfig struct {
	MoviesPath     string
	SimilarityPath string

	// Format is one of FormatAuto, FormatJSON or FormatCSV.
	Format string

	// StrictDimensions turns a dimension mismatch into a load error
	// instead of a logged warning.
	StrictDimensions bool
}

// Loader reads the catalog and similarity artifacts.
type Loader struct {
	cfg    LoaderConfig
	logger zerolog.Logger
}

// NewLoader creates a loader.
func NewLoader(cfg LoaderConfig, logger zerolog.Logger) *Loader {
	if cfg.Format == "" {
		cfg.Format = FormatAuto
	}
	return &Loader{
		cfg:    cfg,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Load reads both artifacts and returns them. A dimension mismatch is logged
// and tolerated unless StrictDimensions is set.
func (l *Loader) Load(ctx context.Context) (*Artifacts, error) {
	start := time.Now()

	records, err := l.loadMovies(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, l.cfg.MoviesPath)
	}

	index, err := l.loadSimilarity(ctx)
	if err != nil {
		return nil, err
	}

	arts := &Artifacts{Catalog: NewCatalog(records), Index: index}
	if arts.Mismatch() {
		if l.cfg.StrictDimensions {
			return nil, fmt.Errorf("%w: similarity dimension %d does not match catalog length %d",
				ErrMalformedMatrix, index.Dim(), len(records))
		}
		l.logger.Warn().
			Int("movies", len(records)).
			Int("similarity_dim", index.Dim()).
			Msg("Similarity dimension does not match catalog length; out-of-range candidates will be skipped")
	}

	l.logger.Info().
		Int("movies", len(records)).
		Int("similarity_dim", index.Dim()).
		Dur("duration", time.Since(start)).
		Msg("Catalog artifacts loaded")

	return arts, nil
}

func (l *Loader) loadMovies(ctx context.Context) ([]MovieRecord, error) {
	format, err := resolveFormat(l.cfg.Format, l.cfg.MoviesPath)
	if err != nil {
		return nil, err
	}
	data, err := readFile(ctx, l.cfg.MoviesPath)
	if err != nil {
		return nil, fmt.Errorf("read movies: %w", err)
	}

	switch format {
	case FormatCSV:
		return DecodeMoviesCSV(bytes.NewReader(data))
	default:
		return DecodeMoviesJSON(data)
	}
}

func (l *Loader) loadSimilarity(ctx context.Context) (*SimilarityIndex, error) {
	format, err := resolveFormat(l.cfg.Format, l.cfg.SimilarityPath)
	if err != nil {
		return nil, err
	}
	data, err := readFile(ctx, l.cfg.SimilarityPath)
	if err != nil {
		return nil, fmt.Errorf("read similarity: %w", err)
	}

	var rows [][]float64
	switch format {
	case FormatCSV:
		rows, err = DecodeMatrixCSV(bytes.NewReader(data))
	default:
		rows, err = DecodeMatrixJSON(data)
	}
	if err != nil {
		return nil, err
	}
	return NewSimilarityIndex(rows)
}

// DecodeMoviesJSON parses an array of movie objects.
func DecodeMoviesJSON(data []byte) ([]MovieRecord, error) {
	var records []MovieRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode movies json: %w", err)
	}
	return records, nil
}

// DecodeMoviesCSV parses a headed movie_id,title,tags CSV.
func DecodeMoviesCSV(r io.Reader) ([]MovieRecord, error) {
	var rows []*MovieRecord
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode movies csv: %w", err)
	}
	records := make([]MovieRecord, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			records = append(records, *row)
		}
	}
	return records, nil
}

// DecodeMatrixJSON parses an array of numeric arrays.
func DecodeMatrixJSON(data []byte) ([][]float64, error) {
	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode similarity json: %w", err)
	}
	return rows, nil
}

// DecodeMatrixCSV parses one comma-separated row of numbers per line.
// Rows may differ in width here; squareness is checked by NewSimilarityIndex.
func DecodeMatrixCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var rows [][]float64
	for line := 1; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode similarity csv line %d: %w", line, err)
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("decode similarity csv line %d column %d: %w", line, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func resolveFormat(format, path string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatAuto, "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			return FormatCSV, nil
		case ".json":
			return FormatJSON, nil
		}
		return "", fmt.Errorf("%w: cannot infer format of %q", ErrUnknownFormat, path)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path) //nolint:gosec // path comes from operator configuration
}
