// Package robot provides the mail-carrying agents of the automail domain.
//
// The package includes:
//   - Capability and Kind: the fixed profiles (standard, weak, big, careful) that
//     decide what a robot may carry and how fast it moves
//   - Carrier: the bounded last-in-first-out container a robot is loaded through
//   - Robot: the aggregate root running the RETURNING / WAITING / DELIVERING cycle
//   - FaultError: scheduling defects with the robot, item and tick they occurred at
//
// Key business rules:
//   - A carrier never exceeds its capacity and always knows how many fragile items it holds
//   - Robots only leave the mailroom when loaded and dispatched on an earlier tick
//   - Undelivered items are returned to the pool every time a robot is back in the mailroom
//
// Robots are driven step by step from a single goroutine; nothing in this package
// is safe for concurrent use.
package robot
