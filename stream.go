package mdnorm

import (
	"context"
	"sync"
)

// Frame is one normalized rendering of a message. Final is set on the last
// frame, produced by the full pass.
type Frame struct {
	Text  string
	Final bool
}

// Stream tracks one message while it arrives. Each update runs the
// streaming pass on the cumulative text; Complete runs the full pass once.
// A Stream is safe for concurrent use.
type Stream struct {
	n     *Normalizer
	mu    sync.Mutex
	raw   string
	final string
	done  bool
}

// NewStream starts a Stream for one message.
func (n *Normalizer) NewStream() *Stream {
	return &Stream{n: n}
}

// NewStream starts a Stream using the built-in lexicon.
func NewStream() *Stream {
	return defaultNormalizer().NewStream()
}

// Update replaces the accumulated text with cumulative and returns it
// normalized. After Complete, updates are ignored and the final text is
// returned.
func (s *Stream) Update(cumulative string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return s.final
	}
	s.raw = cumulative
	return s.n.NormalizeStreaming(s.raw)
}

// Append adds a delta to the accumulated text and returns it normalized.
func (s *Stream) Append(delta string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return s.final
	}
	s.raw += delta
	return s.n.NormalizeStreaming(s.raw)
}

// Raw returns the accumulated text as received.
func (s *Stream) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// Complete marks the message finished and returns the full pass over the
// accumulated text. Later calls return the same value.
func (s *Stream) Complete() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.final = s.n.Normalize(s.raw)
		s.done = true
	}
	return s.final
}

// Done reports whether Complete has been called.
func (s *Stream) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Follow consumes cumulative text from updates, calling emit with a
// streaming frame for each one. Closing updates signals completion: the
// full pass is emitted as the final frame and returned. On cancellation
// Follow returns the last streaming frame and ctx.Err(). emit may be nil.
func (n *Normalizer) Follow(ctx context.Context, updates <-chan string, emit func(Frame)) (string, error) {
	if emit == nil {
		emit = func(Frame) {}
	}

	s := n.NewStream()
	var last string
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case text, ok := <-updates:
			if !ok {
				final := s.Complete()
				emit(Frame{Text: final, Final: true})
				return final, nil
			}
			last = s.Update(text)
			emit(Frame{Text: last})
		}
	}
}

// Follow runs Normalizer.Follow with the built-in lexicon.
func Follow(ctx context.Context, updates <-chan string, emit func(Frame)) (string, error) {
	return defaultNormalizer().Follow(ctx, updates, emit)
}
