package midi

const beatsPerBar = 4

// QuarterPosition returns the zero-based bar of tick and the beat inside that
// bar, counting four quarter notes to the bar.
func QuarterPosition(tick uint64, ticksPerQuarterNote uint16) (bar uint64, beat int) {
	if ticksPerQuarterNote == 0 {
		return 0, 0
	}
	quarters := tick / uint64(ticksPerQuarterNote)
	return quarters / beatsPerBar, int(quarters % beatsPerBar)
}
