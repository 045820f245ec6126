// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - AnnotationStore: Remote annotation persistence
//   - ProgressStore: Remote reading-position persistence
//   - SearchIndex: The external knowledge index, consumed as a remote call
//   - PageSource: The renderer, consumed as a black box (page count, page text)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ViewportMeasurer: Container-origin measurement. Without it, anchors
//     degrade to approximate placement instead of being lost.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
