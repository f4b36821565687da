package http1

import "go.uber.org/zap"

// log is the package-wide logger, following packetd's pattern of a
// package-level *zap.Logger with a setter rather than forcing every
// caller to thread one through. Defaults to a no-op logger so a driver
// that never calls SetLogger pays nothing for tracing calls.
var log = zap.NewNop()

// SetLogger installs l as the logger used for protocol-level tracing
// (redirect hops, chunk framing decisions, connection-reuse verdicts).
// Passing nil restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}
