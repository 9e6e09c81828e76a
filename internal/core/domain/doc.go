// Package domain defines the core business entities for fieldlens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawJob: A job payload as the backend sent it, in any known shape
//   - NormalizedJob: The canonical sector list and per-sector blocks
//   - PhotoRecord: A photo uploaded by a field worker
//   - SectorTag: A sector number or the unknown sentinel
//   - Tile, DisplayRow: Render-ready preview values
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
