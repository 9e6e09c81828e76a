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
//   - JobAPI: The inspection backend (jobs, photos, exports, templates, auth)
//   - JobNormaliser: Raw job shapes to NormalizedJob
//   - PhotoIndexer: Latest-wins (sector, type) photo index
//   - PhotoURLResolver: Display URLs from storage keys
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ExportHistoryStore: Without it, exports are not recorded.
//   - PreviewWriter: Without it, local preview workbooks are unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
