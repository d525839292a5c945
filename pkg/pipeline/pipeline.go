// Package pipeline provides the core draw pipeline for heatsheet.
//
// This package implements the complete normalize → group → render
// pipeline that can be used by the CLI, the HTTP server, and host
// adapters. By centralizing this logic, every entry point produces the
// same output for the same payload.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Normalize: adapt the host payload into canonical swimmer entries
//  2. Group: fold the entries into the race → heat → swimmer grouping
//  3. Render: build the display tree and serialize it per format
//
// A draw is a total function: it completes by producing exactly one of
// a populated tree, the fixed empty state, or a single error node
// carrying the failure text. Nothing is retried and nothing escapes to
// the host.
//
// # Usage
//
// Create a Runner and execute a draw:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Draw(ctx, payload, pipeline.Options{
//	    Formats: []string{pipeline.FormatHTML},
//	})
//	if err != nil {
//	    log.Fatal(err) // invalid options, not a draw failure
//	}
//	html := result.Artifacts[pipeline.FormatHTML]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/oadl/heatsheet/pkg/cache"
	"github.com/oadl/heatsheet/pkg/render"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultFormat is the format used when none is requested.
const DefaultFormat = FormatHTML

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatText: true,
	FormatJSON: true,
}

// Options contains all configuration for a draw.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Formats selects which sinks to run. Defaults to ["html"].
	Formats []string `json:"formats,omitempty"`

	// Document wraps HTML output in a complete page with the Title.
	Document bool   `json:"document,omitempty"`
	Title    string `json:"title,omitempty"`

	// Plain disables styling and striping in text output.
	Plain bool `json:"plain,omitempty"`

	// Indent pretty-prints JSON output.
	Indent bool `json:"indent,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of one draw.
type Result struct {
	// Tree is the display tree the draw produced (populated, empty, or
	// error state).
	Tree *render.Tree

	// PayloadHash is the content hash of the raw payload.
	PayloadHash string

	// Artifacts contains serialized outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains draw execution statistics.
type Stats struct {
	RowCount     int
	RaceCount    int
	SwimmerCount int
	GroupTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for a draw.
type CacheInfo struct {
	ArtifactHits map[string]bool // format → whether it came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: html, text, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the given format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Document: o.Document,
		Plain:    o.Plain,
		Indent:   o.Indent,
	}
}
