package robot

import (
	"fmt"

	"automail/internal/core/domain/model/kernel"
)

// NewRoster builds one robot per declared type tag, in declared order, all standing
// at origin. Ids come from ids ("R0", "R1", ...) so that numbering is explicit
// per run rather than process-global.
//
// Returns ErrUnknownAgentType (wrapped) for a tag with no capability profile.
func NewRoster(tags []string, origin kernel.Floor, pool MailPool, sink DeliverySink, ids *kernel.Sequence) ([]*Robot, error) {
	if ids == nil {
		ids = kernel.NewSequence("R")
	}

	robots := make([]*Robot, 0, len(tags))
	for i, tag := range tags {
		kind, err := ParseKind(tag)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}

		r, err := NewRobot(ids.Next(), kind, origin, pool, sink)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		robots = append(robots, r)
	}
	return robots, nil
}
