package midi

// TempoChange is a Set Tempo event placed on the absolute tick axis.
type TempoChange struct {
	AtTick                     uint64
	MicrosecondsPerQuarterNote uint32
}

// BPM returns the tempo in quarter notes per minute.
func (t TempoChange) BPM() float64 {
	if t.MicrosecondsPerQuarterNote == 0 {
		return 0
	}
	return 60000000 / float64(t.MicrosecondsPerQuarterNote)
}

// TempoChanges collects the Set Tempo events of a track. A track without any
// gets a single 120 BPM entry at tick 0.
func TempoChanges(events []Event) ([]TempoChange, error) {
	var (
		tick    uint64
		changes []TempoChange
	)

	for _, e := range events {
		tick += uint64(e.Delta)
		if !e.IsMeta(MetaSetTempo) {
			continue
		}
		mpqn, err := e.Tempo()
		if err != nil {
			return nil, err
		}
		changes = append(changes, TempoChange{AtTick: tick, MicrosecondsPerQuarterNote: mpqn})
	}

	if len(changes) == 0 {
		changes = append(changes, TempoChange{AtTick: 0, MicrosecondsPerQuarterNote: DefaultTempo})
	}
	return changes, nil
}
