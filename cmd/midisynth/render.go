package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Garik-/midiwav/pkg/midi"
	"github.com/Garik-/midiwav/pkg/synth"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
	"go.uber.org/zap"
)

// part is one monophonic voice of the input rendered into its own file.
type part struct {
	name   string
	events func() (midi.EventIterator, error)
}

type result struct {
	path  string
	stats synth.Stats
	err   error
}

// planParts splits a decoded file into voices: the channels of the single
// track for format 0, every track after the tempo track otherwise.
func planParts(d *midi.Decoder) ([]part, error) {
	if d.Header.Format == 0 {
		events, err := d.DecodeTrack(0)
		if err != nil {
			return nil, err
		}

		split := midi.SplitChannels(events)
		parts := make([]part, 0, len(split))
		for _, ch := range midi.Channels(split) {
			events := split[ch]
			parts = append(parts, part{
				name: fmt.Sprintf("channel%d.wav", ch),
				events: func() (midi.EventIterator, error) {
					return midi.NewSliceIterator(events), nil
				},
			})
		}
		return parts, nil
	}

	parts := make([]part, 0, d.Header.NumTracks)
	for n := 1; n < int(d.Header.NumTracks); n++ {
		n := n
		parts = append(parts, part{
			name: fmt.Sprintf("track%d.wav", n),
			events: func() (midi.EventIterator, error) {
				return d.Track(n)
			},
		})
	}
	return parts, nil
}

func renderPart(dir string, p part, tl *midi.Timeline, cfg synth.Config) *result {
	out := &result{path: filepath.Join(dir, p.name)}

	events, err := p.events()
	if err != nil {
		out.err = err
		return out
	}

	f, err := os.Create(out.path)
	if err != nil {
		out.err = err
		return out
	}

	out.stats, out.err = synth.Render(f, tl, events, cfg)
	if err := f.Close(); err != nil && out.err == nil {
		out.err = err
	}

	if out.err != nil {
		out.err = errors.Wrapf(out.err, "render %s", p.name)
		os.Remove(out.path)
	}

	return out
}

func renderWorker(ctx context.Context, dir string, parts []part, tl *midi.Timeline, cfg synth.Config, cntRoutines int) (<-chan *result, <-chan struct{}) {
	out := make(chan *result)
	done := make(chan struct{}, 1)

	go func() {
		swg := sizedwaitgroup.New(cntRoutines)

		for _, p := range parts {
			if err := swg.AddWithContext(ctx); err != nil {
				renderLog.Debug("renderWorker context done", zap.Error(err))
				break
			}

			go func(p part) {
				defer swg.Done()

				select {
				case out <- renderPart(dir, p, tl, cfg):
				case <-ctx.Done():
					renderLog.Debug("renderPart context done", zap.String("part", p.name))
				}
			}(p)
		}

		swg.Wait()
		close(out)

		done <- struct{}{}
		close(done)
	}()

	return out, done
}

// collectResults logs the rendered voices and returns how many of total did
// not make it to disk, counting the ones dropped by a cancelled ctx.
func collectResults(ctx context.Context, results <-chan *result, total int) (int, error) {
	failed, received := 0, 0
	for r := range results {
		received++
		if r.err != nil {
			log.Printf("%s: %v", r.path, r.err)
			failed++
			continue
		}

		renderLog.Debug("rendered",
			zap.String("path", r.path),
			zap.Int("samples", r.stats.Samples),
			zap.Int("transitions", r.stats.Transitions))

		log.Printf("writing %s: %s, %s", r.path,
			humanize.Bytes(uint64(r.stats.Bytes)),
			durafmt.Parse(r.stats.Duration.Round(time.Millisecond)).LimitFirstN(2))
	}

	failed += total - received
	if err := ctx.Err(); err != nil {
		return failed, errors.Wrapf(err, "%d of %d voice(s) not rendered", total-received, total)
	}
	return failed, nil
}
