package main

import (
	"github.com/Garik-/midiwav/pkg/midi"
	"github.com/Garik-/midiwav/pkg/synth"
	"go.uber.org/zap"
)

var renderLog = zap.NewNop()

func enableDebugLogging(l *zap.Logger) {
	renderLog = l
	midi.EnableDebugLogging(l)
	synth.EnableDebugLogging(l)
}
