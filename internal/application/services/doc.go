// Package services provides the application layer of the alert manager.
//
// This package contains:
//   - Alert listing, detail, related alerts and condition previews (AlertService)
//   - Per-user filter editing sessions and the save-filters flow (EditingService)
//   - Alert field options derived from a tile's query (FieldService)
//
// Services depend on the ports interfaces so they can be tested with mocks.
package services
