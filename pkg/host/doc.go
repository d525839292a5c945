// Package host models the collaborator boundary between heatsheet and
// the hosting visualization surface.
//
// The host supplies two things: a data-ready event carrying row data
// plus field metadata, and a container that mounted output replaces.
// This package keeps both explicit so the pipeline stays a pure
// (rows, fields) → display tree function testable without any host:
//
//   - Payload: decodes the host message in either accepted wire shape
//     (pre-split dimension rows, or flat rows plus field descriptors)
//   - Bus: registers exactly one data-ready handler and dispatches
//     events to it synchronously
//   - Container: an explicit mount-point handle whose content each draw
//     fully replaces, last write wins
package host
