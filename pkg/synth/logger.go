package synth

import "go.uber.org/zap"

var renderLog = zap.NewNop()

// EnableDebugLogging routes the package's debug output to l.
func EnableDebugLogging(l *zap.Logger) {
	renderLog = l
}
