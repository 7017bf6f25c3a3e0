package main

import (
	"context"
	"fmt"
	"io"
	"time"

	mdnorm "github.com/alnah/go-mdnorm"
	"github.com/alnah/go-mdnorm/internal/config"
)

// defaultChunkSize is the number of characters per simulated update.
const defaultChunkSize = 16

// clearScreen moves the cursor home and erases the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// runStreamCmd replays one input as a sequence of cumulative updates,
// normalizing every frame the way a chat client would while the model is
// still writing. The final frame uses the full pass.
func runStreamCmd(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseStreamFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(inputs) > 1 {
		return fmt.Errorf("%w: stream takes at most one input, got %d", ErrUsage, len(inputs))
	}

	n, cfg, _, err := setupNormalizer(&flags.common, &flags.lexicon, env)
	if err != nil {
		return err
	}
	mergeStreamFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	delay, err := cfg.Stream.DelayDuration()
	if err != nil {
		return err
	}
	chunk := cfg.Stream.ChunkSize
	if chunk == 0 {
		chunk = defaultChunkSize
	}

	input := stdinName
	if len(inputs) == 1 {
		input = inputs[0]
	}
	text, err := readInput(input, env)
	if err != nil {
		return err
	}

	sink := &frameSink{
		n:      n,
		w:      env.Stdout,
		opts:   mdnorm.TermOptions{Style: cfg.Render.TermStyle, Width: cfg.Render.Width},
		term:   flags.term,
		frames: flags.frames,
	}

	updates := make(chan string)
	go feedChunks(ctx, text, chunk, delay, updates)

	final, err := n.Follow(ctx, updates, sink.emit)
	if err != nil {
		return err
	}
	if sink.err != nil {
		return withHint(sink.err)
	}
	if !flags.term && !flags.frames {
		_, err = io.WriteString(env.Stdout, final)
	}
	return err
}

// mergeStreamFlags applies stream and terminal flags to cfg (CLI wins).
func mergeStreamFlags(f *streamFlags, cfg *config.Config) {
	if f.chunk != 0 {
		cfg.Stream.ChunkSize = f.chunk
	}
	if f.delay != delayUnset {
		cfg.Stream.Delay = f.delay.String()
	}
	if f.termStyle != "" {
		cfg.Render.TermStyle = f.termStyle
	}
	if f.width != 0 {
		cfg.Render.Width = f.width
	}
}

// frameSink receives frames from Follow. With term set each frame
// redraws the screen; with frames set each one is printed under a header.
// Otherwise frames are dropped and the caller prints the final text. The
// first render error stops further output.
type frameSink struct {
	n      *mdnorm.Normalizer
	w      io.Writer
	opts   mdnorm.TermOptions
	term   bool
	frames bool
	count  int
	err    error
}

func (s *frameSink) emit(f mdnorm.Frame) {
	s.count++
	if s.err != nil {
		return
	}

	switch {
	case s.term:
		out, err := s.n.RenderFrame(f, s.opts)
		if err != nil {
			s.err = err
			return
		}
		fmt.Fprint(s.w, clearScreen, out)
	case s.frames:
		if f.Final {
			fmt.Fprintln(s.w, "--- final ---")
		} else {
			fmt.Fprintf(s.w, "--- frame %d ---\n", s.count)
		}
		fmt.Fprintln(s.w, f.Text)
	}
}

// feedChunks sends cumulative prefixes of text to updates, chunk runes at
// a time, pausing delay between sends. updates is closed after the last
// prefix; on cancellation feedChunks returns without closing it.
func feedChunks(ctx context.Context, text string, chunk int, delay time.Duration, updates chan<- string) {
	runes := []rune(text)
	for end := 0; end < len(runes); {
		end = min(end+chunk, len(runes))

		select {
		case updates <- string(runes[:end]):
		case <-ctx.Done():
			return
		}

		if delay > 0 && end < len(runes) {
			t := time.NewTimer(delay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return
			}
		}
	}
	close(updates)
}
