package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestInitSetsLevel(t *testing.T) {
	Init("warn", false)

	l := L()
	if l == nil {
		t.Fatal("expected a logger")
	}
	if got := l.GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %s", got)
	}

	// The accessor must hand out a logger whose level methods are
	// directly callable.
	l.Warn().Msg("level check")
	l.Info().Msg("suppressed below warn")
}
