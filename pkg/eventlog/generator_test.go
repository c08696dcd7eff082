package eventlog

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 9, 18, 30, 0, 123456789, time.UTC)

func newTestGenerator(params Params) *Generator {
	return NewGenerator(params,
		WithRand(rand.New(rand.NewPCG(42, 1337))),
		WithClock(func() time.Time { return testNow }),
	)
}

// Check the per-session invariants on a single session's events
func assertSessionEvents(t *testing.T, params Params, sid uuid.UUID, events []Event) {
	t.Helper()
	require.NotEmpty(t, events)

	assert.Equal(t, ActionMessageReceived, events[0].Action, "first action")
	if len(events) >= 2 {
		assert.Equal(t, ActionMessageSent, events[len(events)-1].Action, "last action")
	}

	minGap := time.Duration(params.MinSecondsBetweenEvents) * time.Second
	maxGap := time.Duration(params.MaxSecondsBetweenEvents) * time.Second

	for i, e := range events {
		assert.Equal(t, sid, e.SessionID)
		assert.Contains(t, Actions, e.Action)
		assert.Equal(t, time.UTC, e.Timestamp.Location())

		if i == 0 {
			continue
		}

		gap := e.Timestamp.Sub(events[i-1].Timestamp)
		assert.True(t, gap > 0, "timestamps must strictly increase (event %d)", i)
		assert.GreaterOrEqual(t, gap, minGap)
		assert.LessOrEqual(t, gap, maxGap)
	}
}

func TestGenerateSessions(t *testing.T) {
	g := newTestGenerator(DefaultParams())

	t.Run("requested count", func(t *testing.T) {
		sessions := g.GenerateSessions(25)
		assert.Len(t, sessions, 25)
		assert.Len(t, lo.Uniq(sessions), 25)

		for _, sid := range sessions {
			assert.NotEqual(t, uuid.Nil, sid)
		}
	})

	t.Run("zero and negative", func(t *testing.T) {
		assert.Empty(t, g.GenerateSessions(0))
		assert.Empty(t, g.GenerateSessions(-3))
	})
}

func TestGenerateSessionEvents(t *testing.T) {
	params := DefaultParams()
	g := newTestGenerator(params)

	tests := []struct {
		name     string
		count    int
		expected int
	}{
		{"single event", 1, 1},
		{"received and sent", 2, 2},
		{"one interior event", 3, 3},
		{"default maximum", 10, 10},
		{"zero is clamped to one", 0, 1},
		{"negative is clamped to one", -4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sid := uuid.New()
			events := g.GenerateSessionEvents(sid, tt.count)

			require.Len(t, events, tt.expected)
			assertSessionEvents(t, params, sid, events)

			// The first event lands one offset after the clock
			start := testNow.Truncate(time.Microsecond)
			assert.True(t, events[0].Timestamp.After(start))
			assert.False(t, events[0].Timestamp.After(start.Add(time.Duration(params.MaxSecondsBetweenEvents)*time.Second)))
		})
	}
}

func TestGenerateSessionEvents_SingleEventIsReceived(t *testing.T) {
	g := newTestGenerator(DefaultParams())

	events := g.GenerateSessionEvents(uuid.New(), 1)
	require.Len(t, events, 1)
	assert.Equal(t, ActionMessageReceived, events[0].Action)
}

func TestGenerateSessionEvents_FixedOffset(t *testing.T) {
	params := DefaultParams()
	params.MinSecondsBetweenEvents = 5
	params.MaxSecondsBetweenEvents = 5
	g := newTestGenerator(params)

	events := g.GenerateSessionEvents(uuid.New(), 4)
	require.Len(t, events, 4)

	start := testNow.Truncate(time.Microsecond)
	for i, e := range events {
		assert.Equal(t, start.Add(time.Duration(5*(i+1))*time.Second), e.Timestamp)
	}
}

func TestGenerateSessionEvents_InteriorActions(t *testing.T) {
	g := newTestGenerator(DefaultParams())

	events := g.GenerateSessionEvents(uuid.New(), 200)
	interior := events[1 : len(events)-1]

	counts := lo.CountValues(lo.Map(interior, func(e Event, _ int) Action {
		return e.Action
	}))

	// Uniform choice over two actions should produce both many times
	assert.Greater(t, counts[ActionMessageReceived], 50)
	assert.Greater(t, counts[ActionMessageSent], 50)
}

func TestGenerateEvents(t *testing.T) {
	params := DefaultParams()
	params.SessionCount = 40
	g := newTestGenerator(params)

	events := g.GenerateEvents()
	require.NotEmpty(t, events)

	t.Run("globally sorted by timestamp", func(t *testing.T) {
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].Timestamp.Before(events[i-1].Timestamp), "event %d out of order", i)
		}
	})

	t.Run("sessions and per-session counts", func(t *testing.T) {
		bySession := lo.GroupBy(events, func(e Event) uuid.UUID {
			return e.SessionID
		})
		assert.Len(t, bySession, params.SessionCount)

		for sid, sessionEvents := range bySession {
			assert.GreaterOrEqual(t, len(sessionEvents), params.MinEventsPerSession)
			assert.LessOrEqual(t, len(sessionEvents), params.MaxEventsPerSession)

			// Stable sort keeps each session's strictly increasing order
			assertSessionEvents(t, params, sid, sessionEvents)
		}
	})

	t.Run("identifiers are distinct", func(t *testing.T) {
		ids := lo.Map(events, func(e Event, _ int) uuid.UUID { return e.ID })
		sessions := lo.Uniq(lo.Map(events, func(e Event, _ int) uuid.UUID { return e.SessionID }))

		all := append(ids, sessions...)
		assert.Len(t, lo.Uniq(all), len(all))
	})
}

func TestGenerateEvents_FixedEventCount(t *testing.T) {
	tests := []struct {
		name     string
		sessions int
		perSess  int
	}{
		{"no sessions", 0, 3},
		{"one session one event", 1, 1},
		{"one session two events", 1, 2},
		{"many sessions", 12, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			params.SessionCount = tt.sessions
			params.MinEventsPerSession = tt.perSess
			params.MaxEventsPerSession = tt.perSess

			events := newTestGenerator(params).GenerateEvents()
			assert.Len(t, events, tt.sessions*tt.perSess)
		})
	}
}

func TestNewGenerator_Defaults(t *testing.T) {
	g := NewGenerator(DefaultParams())

	before := time.Now().UTC()
	events := g.GenerateSessionEvents(uuid.New(), 2)
	require.Len(t, events, 2)
	assert.True(t, events[0].Timestamp.After(before.Add(-time.Microsecond)))
}
