// Package mail provides the mail item of the automail domain: the immutable record
// of one parcel's scheduling attributes (priority, destination, weight class,
// fragility) that moves from the mailroom pool into a robot's carrier and from
// there to the delivery sink.
package mail
