package pipeline

import (
	"testing"

	"github.com/alnah/go-mdnorm/internal/lexicon"
)

func defaultCompiled(t testing.TB) *lexicon.Compiled {
	t.Helper()
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatalf("lexicon.Default() error = %v", err)
	}
	c, err := lex.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return c
}

func newTestNormalizer(t testing.TB) *Normalizer {
	t.Helper()
	return NewNormalizer(defaultCompiled(t), nil)
}
