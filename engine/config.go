package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// ReplacePolicy selects how the transposition table picks a slot to overwrite.
type ReplacePolicy uint8

const (
	// ReplaceDepthPreferred keeps deeper results: a same-key entry is only
	// overwritten by an equal or deeper search (or an exact bound), otherwise
	// an empty slot or the shallowest slot of the cluster is taken.
	ReplaceDepthPreferred ReplacePolicy = iota
	// ReplaceAlways overwrites the same-key slot, else the first slot.
	ReplaceAlways
)

func (p ReplacePolicy) String() string {
	if p == ReplaceAlways {
		return "always"
	}
	return "depth-preferred"
}

// Config holds the engine settings that stay fixed across searches. Start
// from DefaultConfig: New fills zero numeric fields but takes the toggles as
// given.
type Config struct {
	// Default limits used when a Search call leaves them zero.
	MaxDepth int
	MoveTime time.Duration

	Threads int
	HashMB  int
	Replace ReplacePolicy

	// UseTT disables probing and storing when false; the table is still
	// allocated so it can be switched back on.
	UseTT bool

	AspirationWindow int

	NullMove bool
	LMR      bool
	Futility bool

	Logger zerolog.Logger
}

// DefaultConfig returns the settings used by New for zero fields.
func DefaultConfig() Config {
	return Config{
		MaxDepth:         8,
		MoveTime:         5 * time.Second,
		Threads:          1,
		HashMB:           16,
		Replace:          ReplaceDepthPreferred,
		UseTT:            true,
		AspirationWindow: 50,
		NullMove:         true,
		LMR:              true,
		Futility:         true,
		Logger:           zerolog.Nop(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxDepth <= 0 {
		c.MaxDepth = d.MaxDepth
	}
	c.MaxDepth = Min(c.MaxDepth, MaxDepth-1)
	if c.MoveTime <= 0 {
		c.MoveTime = d.MoveTime
	}
	if c.Threads <= 0 {
		c.Threads = d.Threads
	}
	if c.HashMB <= 0 {
		c.HashMB = d.HashMB
	}
	if c.AspirationWindow < 0 {
		c.AspirationWindow = 0
	}
	return c
}

// Limits bound a single search. Zero fields fall back to the Config values;
// Infinite ignores the time limit and relies on ctx and the other limits.
type Limits struct {
	Depth    int
	MoveTime time.Duration
	Nodes    uint64

	// Clock, when set, replaces MoveTime with a share of the remaining time.
	TimeLeft  time.Duration
	Increment time.Duration

	Infinite bool

	// OnIteration is called from the main worker after each completed
	// iteration. It must not block for long.
	OnIteration func(Result)
}
