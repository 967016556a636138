// Package simulation holds the run context the step driver owns: the tick clock,
// the allocator, the robot roster and the generated mail schedule. Passing this
// context explicitly replaces any process-wide clock or id state, so two runs
// never interfere.
package simulation
