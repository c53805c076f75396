package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Garik-/midiwav/pkg/midi"
	"github.com/Garik-/midiwav/pkg/synth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	inFlag      = flag.String("i", "", "Input midi file")
	outFlag     = flag.String("o", ".", "Output directory for the wav files")
	rateFlag    = flag.Int("rate", synth.DefaultSampleRate, "Sample rate in Hz, must be > 0")
	maxFlag     = flag.Int("p", runtime.NumCPU(), "Number of voices rendered in parallel, must be > 0")
	verboseFlag = flag.Bool("v", false, "Debug logging")
)

func checkFlags(in string, parallel, rate int) error {
	switch {
	case in == "":
		return errors.New("no input file")
	case parallel <= 0:
		return errors.Errorf("-p must be > 0, got %d", parallel)
	case rate <= 0:
		return errors.Errorf("-rate must be > 0, got %d", rate)
	}
	return nil
}

func synthesize(ctx context.Context, name string, cfg synth.Config) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder := midi.NewDecoder(f)
	if err = decoder.Decode(); err != nil {
		return 0, errors.Wrapf(err, "decode %s", name)
	}

	tl, err := decoder.Timeline()
	if err != nil {
		return 0, errors.Wrap(err, "tempo track")
	}

	parts, err := planParts(decoder)
	if err != nil {
		return 0, err
	}
	if len(parts) == 0 {
		log.Printf("%s: nothing to render", name)
		return 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	results, done := renderWorker(ctx, *outFlag, parts, tl, cfg, *maxFlag)

	defer func() {
		cancel()
		<-done // wait renderWorker closed
	}()

	return collectResults(ctx, results, len(parts))
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -i file.mid [-o dir]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := checkFlags(*inFlag, *maxFlag, *rateFlag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	if *verboseFlag {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer l.Sync()
		enableDebugLogging(l)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := synth.DefaultConfig()
	cfg.SampleRate = *rateFlag

	failed, err := synthesize(ctx, *inFlag, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if failed > 0 {
		log.Fatalf("%d voice(s) failed", failed)
	}
}
