package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/oadl/heatsheet/pkg/cache"
	"github.com/oadl/heatsheet/pkg/field"
	"github.com/oadl/heatsheet/pkg/host"
	"github.com/oadl/heatsheet/pkg/meet"
	"github.com/oadl/heatsheet/pkg/observability"
	"github.com/oadl/heatsheet/pkg/render"
	"github.com/oadl/heatsheet/pkg/render/sink"
)

// Runner encapsulates draw execution with caching.
// CLI and server both use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - each draw
// operates entirely on fresh local state, so multiple goroutines can
// safely use the same Runner with different payloads.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Draw runs the complete normalize → group → render pipeline for a
// decoded payload.
//
// The returned error covers invalid Options only. Failures inside the
// pipeline never surface as errors: they are caught here, at the draw
// entry point, and become an error-state tree whose message carries the
// failure text. Panics are recovered the same way, so a draw always
// completes with exactly one terminal output.
func (r *Runner) Draw(ctx context.Context, p *host.Payload, opts Options) (result *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.drawLogger(opts)

	rowCount := 0
	shape := string(host.ShapeFlat)
	if p != nil {
		rowCount = len(p.Rows)
		shape = string(p.Shape)
	}
	start := time.Now()
	observability.Draw().OnDrawStart(ctx, shape, rowCount)

	defer func() {
		if rec := recover(); rec != nil {
			result = r.errorResult(ctx, fmt.Errorf("draw: %v", rec), opts)
			err = nil
		}
		if result != nil {
			observability.Draw().OnDrawComplete(ctx, string(result.Tree.State), time.Since(start))
		}
	}()

	if p == nil {
		return r.errorResult(ctx, fmt.Errorf("draw: nil payload"), opts), nil
	}

	// Stage 1+2: normalize and group. Both are total; the grouping is
	// fresh local state for this draw only.
	groupStart := time.Now()
	entries := p.Entries()
	grouping := meet.Group(entries)
	tree := render.Build(grouping)
	groupTime := time.Since(groupStart)

	logger.Debug("grouped rows",
		"rows", rowCount,
		"races", grouping.RaceCount(),
		"swimmers", grouping.SwimmerCount(),
		"duration", groupTime)

	// Stage 3: render each requested format, consulting the cache.
	payloadHash := hashPayload(p)
	renderStart := time.Now()
	artifacts, hits := r.renderAll(ctx, tree, payloadHash, opts)
	renderTime := time.Since(renderStart)

	logger.Info("draw complete",
		"state", tree.State,
		"formats", opts.Formats,
		"duration", time.Since(start))

	return &Result{
		Tree:        tree,
		PayloadHash: payloadHash,
		Artifacts:   artifacts,
		Stats: Stats{
			RowCount:     rowCount,
			RaceCount:    grouping.RaceCount(),
			SwimmerCount: grouping.SwimmerCount(),
			GroupTime:    groupTime,
			RenderTime:   renderTime,
		},
		CacheInfo: CacheInfo{ArtifactHits: hits},
	}, nil
}

// DrawRaw decodes a raw payload and draws it. Decode failures follow
// the draw error contract: they come back as an error-state result, not
// as an error.
func (r *Runner) DrawRaw(ctx context.Context, raw []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	p, err := host.DecodePayload(raw)
	if err != nil {
		return r.errorResult(ctx, err, opts), nil
	}
	return r.Draw(ctx, p, opts)
}

// RenderTree serializes an already-built tree in the given format
// without touching the cache. Used for error/empty trees and by the
// server's tree endpoint.
func RenderTree(tree *render.Tree, format string, opts Options) []byte {
	switch format {
	case FormatText:
		var textOpts []sink.TextOption
		if opts.Plain {
			textOpts = append(textOpts, sink.WithPlain())
		}
		return sink.RenderText(tree, textOpts...)
	case FormatJSON:
		var jsonOpts []sink.JSONOption
		if opts.Indent {
			jsonOpts = append(jsonOpts, sink.WithIndent())
		}
		return sink.RenderJSON(tree, jsonOpts...)
	default:
		var htmlOpts []sink.HTMLOption
		if opts.Document {
			htmlOpts = append(htmlOpts, sink.WithDocument(opts.Title))
		}
		return sink.RenderHTML(tree, htmlOpts...)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// renderAll serializes the tree in every requested format, reading and
// populating the artifact cache per format.
func (r *Runner) renderAll(ctx context.Context, tree *render.Tree, payloadHash string, opts Options) (map[string][]byte, map[string]bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	hits := make(map[string]bool, len(opts.Formats))

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(payloadHash, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				hits[format] = true
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		data := RenderTree(tree, format, opts)
		artifacts[format] = data
		hits[format] = false

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, hits
}

// errorResult builds the error-state result for a failed draw, with the
// failure text rendered through every requested format.
func (r *Runner) errorResult(ctx context.Context, cause error, opts Options) *Result {
	tree := render.Error(cause)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		artifacts[format] = RenderTree(tree, format, opts)
	}
	r.drawLogger(opts).Warn("draw failed", "err", cause)
	return &Result{
		Tree:      tree,
		Artifacts: artifacts,
		CacheInfo: CacheInfo{ArtifactHits: map[string]bool{}},
	}
}

// hashPayload derives the cache hash for a decoded payload. Shape,
// rows, and fields fully determine the draw, so their canonical
// encoding is the hash input.
func hashPayload(p *host.Payload) string {
	data, _ := json.Marshal(struct {
		Shape  host.Shape         `json:"shape"`
		Rows   [][]string         `json:"rows"`
		Fields []field.Descriptor `json:"fields,omitempty"`
	}{p.Shape, p.Rows, p.Fields})
	return cache.Hash(data)
}

func (r *Runner) drawLogger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
