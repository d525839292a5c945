// Package pkg provides the core libraries for heatsheet, a swim-meet
// results visualization.
//
// # Overview
//
// heatsheet receives flat result rows plus field metadata from a host,
// reshapes them into a race → heat → swimmer grouping, and renders the
// grouping as a display tree mounted into a host container. The pkg
// directory is organized as:
//
//  1. [field] - Host field metadata (logical identifiers, field maps)
//  2. [meet] - Domain core (row normalization, hierarchical grouping)
//  3. [render] - Display tree construction plus HTML/text/JSON sinks
//  4. [pipeline] - Orchestration (normalize → group → render) with caching
//  5. [host] - Host boundary (payload decoding, event bus, mount container)
//  6. [cache], [store] - Infrastructure (artifact cache, saved sheets)
//  7. [server] - HTTP surface exposing draws, views, and saved sheets
//
// # Data Flow
//
//	host payload (rows + fields)
//	         ↓
//	    [meet] normalize → group
//	         ↓
//	    [render] display tree
//	         ↓
//	    [render/sink] HTML / text / JSON
//	         ↓
//	    [host] container mount
//
// # Quick Start
//
// Run a draw from a decoded payload:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Draw(ctx, payload, pipeline.Options{
//	    Formats: []string{pipeline.FormatHTML},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts[pipeline.FormatHTML]
//
// Every draw is a full rebuild and ends in exactly one of three outputs:
// a populated tree, the fixed empty-state message, or a single error
// node carrying the failure text.
//
// [field]: https://pkg.go.dev/github.com/oadl/heatsheet/pkg/field
// [meet]: https://pkg.go.dev/github.com/oadl/heatsheet/pkg/meet
// [render]: https://pkg.go.dev/github.com/oadl/heatsheet/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/oadl/heatsheet/pkg/pipeline
// [host]: https://pkg.go.dev/github.com/oadl/heatsheet/pkg/host
// [cache]: https://pkg.go.dev/github.com/oadl/heatsheet/pkg/cache
// [store]: https://pkg.go.dev/github.com/oadl/heatsheet/pkg/store
// [server]: https://pkg.go.dev/github.com/oadl/heatsheet/pkg/server
package pkg
