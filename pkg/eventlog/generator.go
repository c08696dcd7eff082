package eventlog

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Generator synthesizes sessions and their time-ordered events
type Generator struct {
	params Params
	rng    *rand.Rand
	now    func() time.Time
}

// Option customizes a Generator
type Option func(*Generator)

// WithRand sets the random source used for counts, offsets and actions
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithClock sets the function used as the current time
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a generator for the given parameters
func NewGenerator(params Params, opts ...Option) *Generator {
	g := &Generator{
		params: params,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GenerateSessions creates n session identifiers
func (g *Generator) GenerateSessions(n int) []uuid.UUID {
	if n <= 0 {
		return []uuid.UUID{}
	}

	return lo.Times(n, func(_ int) uuid.UUID {
		return uuid.New()
	})
}

// GenerateSessionEvents creates k events for a session. The first is always a received message
// and, when k >= 2, the last is always a sent message
func (g *Generator) GenerateSessionEvents(sid uuid.UUID, k int) []Event {
	k = max(k, 1)
	events := make([]Event, 0, k)

	ts := g.now().UTC().Truncate(time.Microsecond).Add(g.offset())
	events = append(events, NewEvent(sid, ActionMessageReceived, ts))

	for range k - 2 {
		ts = ts.Add(g.offset())
		events = append(events, NewEvent(sid, Actions[g.rng.IntN(len(Actions))], ts))
	}

	if k >= 2 {
		ts = ts.Add(g.offset())
		events = append(events, NewEvent(sid, ActionMessageSent, ts))
	}

	return events
}

// GenerateEvents builds every session's events and returns them as one log sorted by timestamp
func (g *Generator) GenerateEvents() []Event {
	sessions := g.GenerateSessions(g.params.SessionCount)

	perSession := lo.Map(sessions, func(sid uuid.UUID, _ int) []Event {
		return g.GenerateSessionEvents(sid, g.between(g.params.MinEventsPerSession, g.params.MaxEventsPerSession))
	})

	events := lo.Flatten(perSession)
	slices.SortStableFunc(events, func(a, b Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return events
}

// offset returns a random gap between consecutive events
func (g *Generator) offset() time.Duration {
	secs := g.between(g.params.MinSecondsBetweenEvents, g.params.MaxSecondsBetweenEvents)
	return time.Duration(secs) * time.Second
}

// between returns a random integer in [low, high]
func (g *Generator) between(low, high int) int {
	if high <= low {
		return low
	}
	return low + g.rng.IntN(high-low+1)
}
