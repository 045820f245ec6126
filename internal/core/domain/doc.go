// Package domain defines the core business entities for Margin.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Anchor: A persisted comment or highlight tied to a text span
//   - SelectionCandidate: An in-flight selection under consideration
//   - ReadingPosition: Per-copy page, zoom and completion state
//   - SearchResult: A scored hit from the knowledge index
//   - Window: A pagination window over an ordered list
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
