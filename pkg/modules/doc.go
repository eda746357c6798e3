// Package modules provides the reconciler modules that sync node data onto
// the real tree.
//
// Each constructor takes the adapter the engine will use and returns a
// reconcile.Module. Modules that need an optional adapter capability
// (events, styles, properties) return an empty module when the adapter
// lacks it.
//
//   - Class: Data.Class toggles class names
//   - Props: Data.Props sets element properties
//   - Attributes: Data.Attrs sets attributes
//   - Style: Data.Style sets inline styles, with delayed and removal values
//   - Dataset: Data.Dataset sets data-* attributes
//   - EventListeners: Data.On attaches handlers
//
// Three more modules observe patches instead of changing the tree: Metrics
// (Prometheus), Tracing (OpenTelemetry) and Logging (slog).
//
// ByName builds a module list from configuration.
package modules
