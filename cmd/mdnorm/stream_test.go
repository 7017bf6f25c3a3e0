package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdnorm/internal/config"
)

func TestFeedChunks(t *testing.T) {
	t.Parallel()

	t.Run("cumulative prefixes then close", func(t *testing.T) {
		t.Parallel()

		updates := make(chan string)
		go feedChunks(context.Background(), "héllo!", 2, 0, updates)

		var got []string
		for u := range updates {
			got = append(got, u)
		}
		want := []string{"hé", "héll", "héllo!"}
		if strings.Join(got, "|") != strings.Join(want, "|") {
			t.Errorf("updates = %q, want %q", got, want)
		}
	})

	t.Run("empty text closes immediately", func(t *testing.T) {
		t.Parallel()

		updates := make(chan string)
		go feedChunks(context.Background(), "", 4, 0, updates)

		if _, ok := <-updates; ok {
			t.Error("expected closed channel")
		}
	})

	t.Run("cancellation stops the feed", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		updates := make(chan string)
		done := make(chan struct{})
		go func() {
			feedChunks(ctx, strings.Repeat("x", 100), 1, time.Hour, updates)
			close(done)
		}()

		<-updates
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("feedChunks did not return after cancel")
		}
	})
}

func TestRunStreamCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints final text", func(t *testing.T) {
		t.Parallel()

		code, stdout, stderr := runCLI(t, "Policy updated. ## New Rules", "stream", "--chunk", "5", "--delay", "0s")
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if stdout != "Policy updated.\n\n## New Rules" {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("frames", func(t *testing.T) {
		t.Parallel()

		code, stdout, stderr := runCLI(t, "Intro text here. ## Setup", "stream", "--chunk", "10", "--frames")
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		for _, want := range []string{"--- frame 1 ---", "--- frame 3 ---", "--- final ---"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("stdout missing %q:\n%s", want, stdout)
			}
		}
		if strings.Contains(stdout, "--- frame 4 ---") {
			t.Errorf("25 characters in chunks of 10 should give 3 frames:\n%s", stdout)
		}
	})

	t.Run("term frames", func(t *testing.T) {
		t.Parallel()

		code, stdout, stderr := runCLI(t, "## Setup\n\n```go\nx := 1\n```", "stream", "--term", "--term-style", "notty", "--width", "40")
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if !strings.Contains(stdout, clearScreen) || !strings.Contains(stdout, "x := 1") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("unknown term style", func(t *testing.T) {
		t.Parallel()

		code, _, stderr := runCLI(t, "text", "stream", "--term", "--term-style", "nope")
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr, "hint: available:") {
			t.Errorf("stderr = %q, want term style hint", stderr)
		}
	})

	t.Run("invalid delay", func(t *testing.T) {
		t.Parallel()

		code, _, stderr := runCLI(t, "text", "stream", "--delay", "1m")
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d (stderr: %s)", code, ExitUsage, stderr)
		}
	})

	t.Run("too many inputs", func(t *testing.T) {
		t.Parallel()

		code, _, _ := runCLI(t, "", "stream", "a.md", "b.md")
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

func TestMergeStreamFlags(t *testing.T) {
	t.Parallel()

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Stream = config.StreamConfig{ChunkSize: 8, Delay: "5ms"}
		mergeStreamFlags(&streamFlags{delay: delayUnset}, cfg)

		if cfg.Stream.ChunkSize != 8 || cfg.Stream.Delay != "5ms" {
			t.Errorf("Stream = %+v, want config values", cfg.Stream)
		}
	})

	t.Run("zero delay flag overrides config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Stream.Delay = "5ms"
		mergeStreamFlags(&streamFlags{delay: 0, chunk: 3, termStyle: "dark", width: 60}, cfg)

		d, err := cfg.Stream.DelayDuration()
		if err != nil || d != 0 {
			t.Errorf("DelayDuration() = %v, %v, want 0", d, err)
		}
		if cfg.Stream.ChunkSize != 3 || cfg.Render.TermStyle != "dark" || cfg.Render.Width != 60 {
			t.Errorf("config = %+v, flags not applied", cfg)
		}
	})
}
