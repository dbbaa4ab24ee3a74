package diagnostic

import (
	"sync"

	"go.uber.org/zap"
)

// Sink is an append-only, process-wide collector of diagnostics.
// It is safe for concurrent use. A nil *Sink discards everything.
type Sink struct {
	mu     sync.Mutex
	diags  Diagnostics
	logger *zap.Logger
}

// NewSink creates a Sink that mirrors every entry to logger.
// A nil logger is replaced with a no-op logger.
func NewSink(logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Sink{logger: logger}
}

// Error records a failure to build a converter.
func (s *Sink) Error(code, message, typePair, fieldPath string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.diags.AddError(code, message, typePair, fieldPath)
	s.mu.Unlock()

	s.logger.Error(message,
		zap.String("code", code),
		zap.String("type_pair", typePair),
		zap.String("field", fieldPath),
	)
}

// Warn records a warning.
func (s *Sink) Warn(code, message, typePair, fieldPath string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.diags.AddWarning(code, message, typePair, fieldPath)
	s.mu.Unlock()

	s.logger.Warn(message,
		zap.String("code", code),
		zap.String("type_pair", typePair),
		zap.String("field", fieldPath),
	)
}

// Info records an informational note with optional suggestions.
func (s *Sink) Info(code, message, typePair, fieldPath string, suggestions ...string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.diags.AddInfo(code, message, typePair, fieldPath)
	s.diags.AddSuggestion(suggestions...)
	s.mu.Unlock()

	s.logger.Debug(message,
		zap.String("code", code),
		zap.String("type_pair", typePair),
		zap.String("field", fieldPath),
		zap.Strings("suggestions", suggestions),
	)
}

// Record appends every entry of d.
func (s *Sink) Record(d Diagnostics) {
	if s == nil {
		return
	}

	for _, e := range d.Errors {
		s.Error(e.Code, e.Message, e.TypePair, e.FieldPath)
	}

	for _, w := range d.Warnings {
		s.Warn(w.Code, w.Message, w.TypePair, w.FieldPath)
	}

	for _, i := range d.Infos {
		s.Info(i.Code, i.Message, i.TypePair, i.FieldPath, i.Suggestions...)
	}
}

// Snapshot returns a copy of everything recorded so far.
func (s *Sink) Snapshot() Diagnostics {
	if s == nil {
		return Diagnostics{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out Diagnostics
	out.Merge(s.diags)

	return out
}

// Warnings returns a copy of the recorded warnings.
func (s *Sink) Warnings() []Diagnostic {
	return s.Snapshot().Warnings
}

// Infos returns a copy of the recorded informational notes.
func (s *Sink) Infos() []Diagnostic {
	return s.Snapshot().Infos
}

// Len returns the number of recorded diagnostics.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.diags.Len()
}
