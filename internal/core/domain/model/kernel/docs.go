// Package kernel provides the shared primitives of the automail domain model.
//
// The package includes:
//   - Floor and Building: validated floor indices and the building robots move in
//   - Tick and Clock: the discrete time of a simulation run
//   - Sequence: explicit id generation for robots and mail items
//   - UUID: run identifiers for delivery ledgers
package kernel
