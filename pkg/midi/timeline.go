package midi

import (
	"fmt"

	"go.uber.org/zap"
)

// TimedEvent is an event placed on the real-time axis.
type TimedEvent struct {
	Millis float64
	Tick   uint64
	Event  Event
}

// anchor is one linear piece of the tick to millisecond mapping.
type anchor struct {
	millis        float64
	tick          uint64
	millisPerTick float64
}

func (a anchor) millisAt(tick uint64) float64 {
	return a.millis + float64(tick-a.tick)*a.millisPerTick
}

// Timeline converts ticks to milliseconds for a sorted list of tempo changes.
// The first tempo change applies from tick 0.
type Timeline struct {
	ticksPerBeat float64
	tempos       []TempoChange
}

func NewTimeline(h Header, tempos []TempoChange) (*Timeline, error) {
	if h.DivisionType != TicksPerBeat {
		return nil, fmt.Errorf("%w - time mapping needs %s division, got %s", ErrFmtNotSupported, TicksPerBeat, h.DivisionType)
	}
	if h.Division == 0 {
		return nil, fmt.Errorf("%w - zero ticks per beat", ErrFmtNotSupported)
	}
	if len(tempos) == 0 {
		return nil, ErrMissingInitialTempo
	}
	for i := 1; i < len(tempos); i++ {
		if tempos[i].AtTick < tempos[i-1].AtTick {
			return nil, fmt.Errorf("%w - tempo change %d at tick %d precedes tick %d",
				ErrUnexpectedData, i, tempos[i].AtTick, tempos[i-1].AtTick)
		}
	}

	return &Timeline{ticksPerBeat: float64(h.Division), tempos: tempos}, nil
}

func (tl *Timeline) start() anchor {
	return anchor{millisPerTick: tl.millisPerTick(tl.tempos[0])}
}

func (tl *Timeline) millisPerTick(t TempoChange) float64 {
	return float64(t.MicrosecondsPerQuarterNote) / 1000 / tl.ticksPerBeat
}

func (tl *Timeline) advance(a anchor, t TempoChange) anchor {
	return anchor{
		millis:        a.millisAt(t.AtTick),
		tick:          t.AtTick,
		millisPerTick: tl.millisPerTick(t),
	}
}

// MillisAt converts an absolute tick to milliseconds.
func (tl *Timeline) MillisAt(tick uint64) float64 {
	a := tl.start()
	for _, t := range tl.tempos[1:] {
		if t.AtTick > tick {
			break
		}
		a = tl.advance(a, t)
	}
	return a.millisAt(tick)
}

// Map returns a mapper placing the events of src on the timeline.
func (tl *Timeline) Map(src EventIterator) *TimeMapper {
	return &TimeMapper{
		tl:     tl,
		src:    src,
		anchor: tl.start(),
		next:   1,
	}
}

// TimeMapper merges an event stream with the tempo changes of a Timeline and
// yields the events in non-decreasing millisecond order.
type TimeMapper struct {
	tl     *Timeline
	src    EventIterator
	anchor anchor
	next   int
	tick   uint64

	cur  TimedEvent
	err  error
	done bool
}

// NewTimeMapper maps events using the tempo changes, which must be sorted by tick.
func NewTimeMapper(h Header, events EventIterator, tempos []TempoChange) (*TimeMapper, error) {
	tl, err := NewTimeline(h, tempos)
	if err != nil {
		return nil, err
	}
	return tl.Map(events), nil
}

func (m *TimeMapper) Next() bool {
	if m.done {
		return false
	}
	if !m.src.Next() {
		m.done = true
		m.err = m.src.Err()
		return false
	}

	ev := m.src.Event()
	m.tick += uint64(ev.Delta)

	// tempo changes win ties with events on the same tick
	tempos := m.tl.tempos
	for m.next < len(tempos) && tempos[m.next].AtTick <= m.tick {
		m.anchor = m.tl.advance(m.anchor, tempos[m.next])
		timelineLog.Named("TimeMapper").Debug("tempo change",
			zap.Uint64("tick", m.anchor.tick),
			zap.Float64("millis", m.anchor.millis),
			zap.Uint32("mpqn", tempos[m.next].MicrosecondsPerQuarterNote))
		m.next++
	}

	m.cur = TimedEvent{Millis: m.anchor.millisAt(m.tick), Tick: m.tick, Event: ev}
	return true
}

func (m *TimeMapper) Timed() TimedEvent {
	return m.cur
}

func (m *TimeMapper) Err() error {
	return m.err
}
