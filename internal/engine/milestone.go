package engine

import (
	"fmt"

	"github.com/abhisek/mindreset/internal/bank"
	"github.com/abhisek/mindreset/internal/config"
)

// DefaultMilestoneInterval is the number of questions between milestone cues.
const DefaultMilestoneInterval = 20

// MilestonePolicy decides whether answering the question at position
// completes a milestone.
type MilestonePolicy interface {
	IsMilestone(position int) bool
}

// EveryN fires after every N answered questions: (position+1) % N == 0.
type EveryN int

func (n EveryN) IsMilestone(position int) bool {
	return n > 0 && position >= 0 && (position+1)%int(n) == 0
}

// LevelBoundaries fires on the last question of each level.
type LevelBoundaries struct {
	Bank *bank.Bank
}

func (l LevelBoundaries) IsMilestone(position int) bool {
	return l.Bank != nil && l.Bank.IsLevelEnd(position)
}

// PolicyFor builds the milestone policy named in cfg.
func PolicyFor(cfg config.Milestone, b *bank.Bank) (MilestonePolicy, error) {
	switch cfg.Policy {
	case "", config.PolicyEvery:
		interval := cfg.Interval
		if interval <= 0 {
			interval = DefaultMilestoneInterval
		}
		return EveryN(interval), nil
	case config.PolicyLevels:
		return LevelBoundaries{Bank: b}, nil
	default:
		return nil, fmt.Errorf("%w: milestone policy %q", config.ErrInvalid, cfg.Policy)
	}
}
