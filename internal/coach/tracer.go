package coach

import "go.uber.org/zap"

// Tracer receives one event per decision step of an evaluation.
type Tracer interface {
	Trace(step string, fields ...zap.Field)
}

type zapTracer struct {
	logger *zap.Logger
}

// NewZapTracer traces decision steps at debug level.
func NewZapTracer(logger *zap.Logger) Tracer {
	return &zapTracer{logger: logger}
}

func (t *zapTracer) Trace(step string, fields ...zap.Field) {
	t.logger.Debug(step, fields...)
}

type nopTracer struct{}

// NewNopTracer discards all trace events.
func NewNopTracer() Tracer {
	return nopTracer{}
}

func (nopTracer) Trace(step string, fields ...zap.Field) {}
