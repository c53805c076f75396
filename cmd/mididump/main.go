package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Garik-/midiwav/pkg/midi"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

var (
	inFlag      = flag.String("i", "", "Input midi file")
	trackFlag   = flag.Int("t", -1, "Track to print, every track when negative")
	charsetFlag = flag.String("charset", "latin1", "Charset of text meta events: latin1, windows1252, macroman, sjis")
	statsFlag   = flag.Bool("stats", false, "Print a note histogram per beat instead of the events")
	verboseFlag = flag.Bool("v", false, "Debug logging")
)

var charsets = map[string]encoding.Encoding{
	"latin1":      charmap.ISO8859_1,
	"windows1252": charmap.Windows1252,
	"macroman":    charmap.Macintosh,
	"sjis":        japanese.ShiftJIS,
}

func textEncoding(name string) (encoding.Encoding, error) {
	enc, ok := charsets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown charset %q", name)
	}
	return enc, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -i file.mid\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inFlag == "" {
		flag.Usage()
		return
	}

	enc, err := textEncoding(*charsetFlag)
	if err != nil {
		log.Fatal(err)
	}

	if *verboseFlag {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer l.Sync()
		midi.EnableDebugLogging(l)
	}

	f, err := os.Open(*inFlag)
	if err != nil {
		log.Fatal(errors.Wrapf(err, "open %s", *inFlag))
	}
	defer f.Close()

	decoder := midi.NewDecoder(f)
	if err = decoder.Decode(); err != nil {
		log.Fatal(errors.Wrapf(err, "decode %s", *inFlag))
	}

	p := newPrinter(os.Stdout, enc)
	p.file(*inFlag, decoder)

	tracks := make([]int, 0, decoder.Header.NumTracks)
	if *trackFlag >= 0 {
		tracks = append(tracks, *trackFlag)
	} else {
		for i := 0; i < int(decoder.Header.NumTracks); i++ {
			tracks = append(tracks, i)
		}
	}

	// no timeline for SMPTE division or a broken tempo track
	tl, err := decoder.Timeline()
	if err != nil {
		log.Printf("no real-time durations: %v", err)
	}

	failed := 0
	for _, n := range tracks {
		events, err := decoder.DecodeTrack(n)
		if err != nil {
			log.Printf("skipping track %d: %v", n, err)
			failed++
			continue
		}

		if *statsFlag {
			p.stats(n, newNoteMap(events, decoder.Header))
		} else {
			p.track(n, events, tl)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
