package midi

import "sort"

// SplitChannels partitions the events of a Format 0 track by channel. Delta
// times are recomputed per channel. Meta events are copied into every
// channel so that each stream keeps its End Of Track; SysEx events are dropped.
func SplitChannels(events []Event) map[uint8][]Event {
	out := make(map[uint8][]Event)
	for _, e := range events {
		if e.Kind().IsChannel() {
			out[e.Channel()] = nil
		}
	}

	last := make(map[uint8]uint64, len(out))
	add := func(ch uint8, tick uint64, e Event) {
		e.Delta = uint32(tick - last[ch])
		last[ch] = tick
		out[ch] = append(out[ch], e)
	}

	var tick uint64
	for _, e := range events {
		tick += uint64(e.Delta)
		switch k := e.Kind(); {
		case k.IsChannel():
			add(e.Channel(), tick, e)
		case k == KindMeta:
			for ch := range out {
				add(ch, tick, e)
			}
		}
	}

	return out
}

// Channels returns the channels of a SplitChannels result in ascending order.
func Channels(split map[uint8][]Event) []uint8 {
	chs := make([]uint8, 0, len(split))
	for ch := range split {
		chs = append(chs, ch)
	}
	sort.Slice(chs, func(i, j int) bool { return chs[i] < chs[j] })
	return chs
}
