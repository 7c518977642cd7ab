package drill

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/zerodrill/zerodrill/internal/log"
	"github.com/zerodrill/zerodrill/internal/tracing"
)

// maxOrderingAttempts caps how many times Generate rebuilds and
// reorders a candidate pool before reporting exhaustion.
const maxOrderingAttempts = 10

// GenerationConfig describes one drill to generate.
type GenerationConfig struct {
	// CommandCount is the requested number of commands. Odd counts
	// round up to the next even number so every command pairs with its
	// mirror; EffectiveCount returns the rounded value.
	CommandCount int
	// ClickValues is the set of click counts commands draw from.
	// Values must be positive and no larger than Bound.
	ClickValues []int
	// Bound is the symmetric per-axis limit in clicks.
	Bound int
	// OrderingFallback switches exhausted ordering to the deterministic
	// paired layout instead of returning ExhaustedError.
	OrderingFallback bool
}

// EffectiveCount returns CommandCount rounded up to the next even
// number. Negative counts round to zero.
func (c GenerationConfig) EffectiveCount() int {
	if c.CommandCount <= 0 {
		return 0
	}
	if c.CommandCount%2 != 0 {
		return c.CommandCount + 1
	}
	return c.CommandCount
}

// Validate reports whether any sequence can satisfy the config. A nil
// return guarantees generation cannot fail for feasibility reasons.
func (c GenerationConfig) Validate() error {
	if c.Bound <= 0 {
		return &InfeasibleConfigError{Bound: c.Bound}
	}
	if len(c.ClickValues) == 0 {
		return &InfeasibleConfigError{Bound: c.Bound, Empty: true}
	}
	for _, v := range c.ClickValues {
		if v <= 0 || v > c.Bound {
			return &InfeasibleConfigError{ClickValue: v, Bound: c.Bound}
		}
	}
	return nil
}

// Generator produces balanced, bound-respecting command sequences.
// Construct with NewGenerator; the zero value has no random source.
type Generator struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewGenerator returns a generator drawing from src. A nil src seeds
// from wall time; pass a fixed-seed source for reproducible drills.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(src), maxAttempts: maxOrderingAttempts}
}

// Generate builds a sequence for cfg. The result nets to zero, never
// leaves the bound at any prefix, and has EffectiveCount commands.
// Infeasible configs fail before any ordering attempt runs. A feasible
// config that still cannot be ordered within the attempt cap returns
// ExhaustedError, unless cfg.OrderingFallback is set.
func (g *Generator) Generate(ctx context.Context, cfg GenerationConfig) (Sequence, error) {
	_, span := tracing.Tracer().Start(ctx, "drill.generate", oteltrace.WithAttributes(
		attribute.Int("drill.command_count", cfg.CommandCount),
		attribute.Int("drill.bound", cfg.Bound),
	))
	defer span.End()

	if err := cfg.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	half := cfg.EffectiveCount() / 2
	if half == 0 {
		return Sequence{}, nil
	}
	values := dedupe(cfg.ClickValues)

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		seq, ok := g.order(g.buildPairs(half, values), cfg.Bound)
		if ok {
			span.SetAttributes(attribute.Int("drill.attempts", attempt))
			log.Debug(log.CatDrill, "sequence generated",
				"commands", len(seq), "attempt", attempt)
			return seq, nil
		}
	}

	if cfg.OrderingFallback {
		seq := g.pairedFallback(half, values)
		span.SetAttributes(attribute.Bool("drill.fallback", true))
		log.Warn(log.CatDrill, "ordering exhausted, using paired layout",
			"commands", len(seq), "attempts", g.maxAttempts)
		return seq, nil
	}

	err := &ExhaustedError{Attempts: g.maxAttempts}
	span.RecordError(err)
	return nil, err
}

// buildPairs draws half random positive commands (up or right, uniform
// click value) and mirrors each, so the pool nets to zero by
// construction.
func (g *Generator) buildPairs(half int, values []int) []Command {
	pool := make([]Command, 0, half*2)
	for i := 0; i < half; i++ {
		dir := Right
		if g.rng.Intn(2) == 0 {
			dir = Up
		}
		cmd := Command{Direction: dir, Clicks: values[g.rng.Intn(len(values))]}
		pool = append(pool, cmd, cmd.Opposite())
	}
	return pool
}

// order consumes the pool by repeatedly drawing uniformly among the
// entries executable from the simulated position. The pool is an
// index-addressed arena with swap-remove, so no slice splicing occurs.
// A position with no executable entry abandons the attempt.
func (g *Generator) order(pool []Command, bound int) (Sequence, bool) {
	seq := make(Sequence, 0, len(pool))
	valid := make([]int, 0, len(pool))
	var pos Position

	live := len(pool)
	for live > 0 {
		valid = valid[:0]
		for i := 0; i < live; i++ {
			if CanApply(pos, pool[i], bound) {
				valid = append(valid, i)
			}
		}
		if len(valid) == 0 {
			return nil, false
		}
		i := valid[g.rng.Intn(len(valid))]
		cmd := pool[i]
		live--
		pool[i] = pool[live]
		seq = append(seq, cmd)
		pos = pos.Apply(cmd)
	}
	return seq, true
}

// pairedFallback lays freshly drawn mirror pairs out adjacently with a
// random internal orientation. Every pair nets to zero, so each prefix
// sits at most one command from the origin and any click value within
// the bound is safe.
func (g *Generator) pairedFallback(half int, values []int) Sequence {
	seq := make(Sequence, 0, half*2)
	for i := 0; i < half; i++ {
		dir := Right
		if g.rng.Intn(2) == 0 {
			dir = Up
		}
		cmd := Command{Direction: dir, Clicks: values[g.rng.Intn(len(values))]}
		if g.rng.Intn(2) == 0 {
			cmd = cmd.Opposite()
		}
		seq = append(seq, cmd, cmd.Opposite())
	}
	return seq
}

func dedupe(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
