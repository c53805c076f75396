package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Garik-/midiwav/pkg/midi"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"golang.org/x/text/encoding"
)

type printer struct {
	w   io.Writer
	enc encoding.Encoding

	title lipgloss.Style
	head  lipgloss.Style
	time  lipgloss.Style
	event lipgloss.Style
	num   lipgloss.Style
}

func newPrinter(w io.Writer, enc encoding.Encoding) *printer {
	return &printer{
		w:     w,
		enc:   enc,
		title: lipgloss.NewStyle().Bold(true),
		head:  lipgloss.NewStyle().Underline(true),
		time:  lipgloss.NewStyle().Width(10).Align(lipgloss.Left),
		event: lipgloss.NewStyle().Width(20).Align(lipgloss.Right),
		num:   lipgloss.NewStyle().Width(9).Align(lipgloss.Right),
	}
}

func (p *printer) file(name string, d *midi.Decoder) {
	fmt.Fprintf(p.w, "%s (%s)\n", p.title.Render(name), humanize.Bytes(uint64(d.Chunks.Size)))
	fmt.Fprintln(p.w, d.Header)
	for _, c := range d.Chunks.Order {
		fmt.Fprintf(p.w, "  %s at %d, %s\n", c.Tag, c.Offset, humanize.Bytes(uint64(c.Length)))
	}
}

func (p *printer) row(tick, event, channel, param1, param2 string) {
	fmt.Fprintln(p.w, p.time.Render(tick)+p.event.Render(event)+p.num.Render(channel)+p.num.Render(param1)+p.num.Render(param2))
}

func (p *printer) line(tick uint64, format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.time.Render(fmt.Sprint(tick))+fmt.Sprintf(format, args...))
}

func (p *printer) track(n int, events []midi.Event, tl *midi.Timeline) {
	fmt.Fprintln(p.w, p.title.Render(fmt.Sprintf("TRACK %d", n)))
	fmt.Fprintln(p.w, p.head.Render(
		p.time.Render("Time")+p.event.Render("Event")+p.num.Render("Channel")+p.num.Render("Param1")+p.num.Render("Param2")))

	var tick uint64
	for _, e := range events {
		tick += uint64(e.Delta)

		switch k := e.Kind(); {
		case k == midi.KindMeta:
			p.meta(tick, e)

		case k == midi.KindSysEx:
			p.line(tick, "SysEx (%d bytes)", len(e.SysExData()))

		case k.IsChannel():
			param2 := ""
			if v, ok := e.Param2(); ok {
				param2 = fmt.Sprint(v)
			}
			p.row(fmt.Sprint(tick), k.String(), fmt.Sprint(e.Channel()), fmt.Sprint(e.Param1()), param2)
		}
	}

	if tl != nil {
		d := time.Duration(tl.MillisAt(tick) * float64(time.Millisecond))
		fmt.Fprintf(p.w, "duration %s\n", durafmt.Parse(d).LimitFirstN(2))
	}
}

func (p *printer) meta(tick uint64, e midi.Event) {
	t := e.MetaType()

	if t == midi.MetaSetTempo {
		mpqn, err := e.Tempo()
		if err != nil {
			p.line(tick, "%s (%v)", t, err)
			return
		}
		bpm := midi.TempoChange{MicrosecondsPerQuarterNote: mpqn}.BPM()
		p.line(tick, "%s (mpqn=%d bpm=%.0f)", t, mpqn, bpm)
		return
	}

	s, ok, err := e.MetaText(p.enc)
	switch {
	case err != nil:
		p.line(tick, "%s (%v)", t, err)
	case ok:
		p.line(tick, "%s: %s", t, s)
	default:
		p.line(tick, "%s (%d bytes)", t, len(e.MetaData()))
	}
}

func (p *printer) stats(n int, m noteMap) {
	fmt.Fprintln(p.w, p.title.Render(fmt.Sprintf("TRACK %d", n)))
	fmt.Fprintln(p.w, p.head.Render(
		p.time.Render("Note")+p.num.Render("Beat 1")+p.num.Render("Beat 2")+p.num.Render("Beat 3")+p.num.Render("Beat 4")))

	notes := make([]uint8, 0, len(m))
	for note := range m {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i] < notes[j] })

	for _, note := range notes {
		row := p.time.Render(fmt.Sprint(note))
		for beat := 0; beat < 4; beat++ {
			row += p.num.Render(fmt.Sprint(m[note][beat]))
		}
		fmt.Fprintln(p.w, row)
	}
}
