package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garik-/midiwav/pkg/midi"
	"github.com/Garik-/midiwav/pkg/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smf(format, division uint16, tracks ...[]byte) []byte {
	buf := []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6,
		0, byte(format), 0, byte(len(tracks)), byte(division >> 8), byte(division)}
	for _, t := range tracks {
		l := len(t)
		buf = append(buf, 'M', 'T', 'r', 'k', byte(l>>24), byte(l>>16), byte(l>>8), byte(l))
		buf = append(buf, t...)
	}
	return buf
}

var (
	tempoTrack = []byte{
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
		0x00, 0xFF, 0x2F, 0x00,
	}
	noteTrack = []byte{
		0x00, 0x90, 0x45, 0x64,
		0x60, 0x80, 0x45, 0x00,
		0x00, 0xFF, 0x2F, 0x00,
	}
	mixedTrack = []byte{
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
		0x00, 0x90, 0x45, 0x64,
		0x00, 0x91, 0x48, 0x64,
		0x60, 0x80, 0x45, 0x00,
		0x00, 0x81, 0x48, 0x00,
		0x00, 0xFF, 0x2F, 0x00,
	}
)

func decodeFile(t *testing.T, data []byte) *midi.Decoder {
	path := filepath.Join(t.TempDir(), "in.mid")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	d := midi.NewDecoder(f)
	require.NoError(t, d.Decode())
	return d
}

func partNames(parts []part) []string {
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, p.name)
	}
	return names
}

func renderAll(t *testing.T, d *midi.Decoder, parts []part) map[string]*result {
	tl, err := d.Timeline()
	require.NoError(t, err)

	dir := t.TempDir()
	results, done := renderWorker(context.Background(), dir, parts, tl, synth.Config{SampleRate: 1000, BufferSize: 64}, 2)

	got := make(map[string]*result)
	for r := range results {
		got[filepath.Base(r.path)] = r
	}
	<-done
	return got
}

func TestPlanPartsTracks(t *testing.T) {
	d := decodeFile(t, smf(1, 96, tempoTrack, noteTrack, noteTrack))

	parts, err := planParts(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"track1.wav", "track2.wav"}, partNames(parts))

	got := renderAll(t, d, parts)
	require.Len(t, got, 2)
	for name, r := range got {
		require.NoError(t, r.err, name)
		assert.Equal(t, 500, r.stats.Samples, name)

		info, err := os.Stat(r.path)
		require.NoError(t, err)
		assert.EqualValues(t, 44+1000, info.Size())
	}
}

func TestPlanPartsChannels(t *testing.T) {
	d := decodeFile(t, smf(0, 96, mixedTrack))

	parts, err := planParts(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"channel0.wav", "channel1.wav"}, partNames(parts))

	got := renderAll(t, d, parts)
	require.Len(t, got, 2)
	for name, r := range got {
		require.NoError(t, r.err, name)
		assert.Equal(t, 500, r.stats.Samples, name)
	}
}

func TestRenderPartFailureRemovesFile(t *testing.T) {
	broken := []byte{0x00, 0x90, 0x45, 0x64}
	d := decodeFile(t, smf(1, 96, tempoTrack, broken))

	parts, err := planParts(d)
	require.NoError(t, err)

	got := renderAll(t, d, parts)
	r := got["track1.wav"]
	require.NotNil(t, r)
	assert.ErrorIs(t, r.err, synth.ErrMissingEndOfTrack)

	_, err = os.Stat(r.path)
	assert.True(t, os.IsNotExist(err))
}

func TestRenderWorkerCanceled(t *testing.T) {
	d := decodeFile(t, smf(1, 96, tempoTrack, noteTrack))
	tl, err := d.Timeline()
	require.NoError(t, err)

	parts, err := planParts(d)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, done := renderWorker(ctx, t.TempDir(), parts, tl, synth.DefaultConfig(), 1)
	failed, err := collectResults(ctx, results, len(parts))
	<-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, failed, len(parts))
}

func TestCollectResultsCountsDropped(t *testing.T) {
	results := make(chan *result, 1)
	results <- &result{path: "track1.wav", stats: synth.Stats{Samples: 1}}
	close(results)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	failed, err := collectResults(ctx, results, 3)
	assert.Equal(t, 2, failed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectResults(t *testing.T) {
	results := make(chan *result, 2)
	results <- &result{path: "track1.wav"}
	results <- &result{path: "track2.wav", err: synth.ErrMissingEndOfTrack}
	close(results)

	failed, err := collectResults(context.Background(), results, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
}

func TestCheckFlags(t *testing.T) {
	assert.NoError(t, checkFlags("in.mid", 1, 44100))
	assert.Error(t, checkFlags("", 1, 44100))
	assert.Error(t, checkFlags("in.mid", 0, 44100))
	assert.Error(t, checkFlags("in.mid", 4, -1))
}
