// Package yamlutil is the single place go-mdnorm touches the YAML library.
// Config files and lexicon files both go through it, so size limits and
// error formatting stay the same for every document the tool reads.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input. A misspelled key in a
// lexicon file would otherwise silently drop a whole word list.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return wrap(err)
	}
	return nil
}

// Marshal encodes v, using literal blocks for multi-line strings so dumped
// lexicons stay readable.
func Marshal(v any) ([]byte, error) {
	result, err := yaml.MarshalWithOptions(v, yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return nil, wrap(err)
	}
	return result, nil
}

// wrap keeps the library's position-annotated message but drops the source
// excerpt, which is noise on a terminal.
func wrap(err error) error {
	return fmt.Errorf("yamlutil: %s: %w", yaml.FormatError(err, false, false), err)
}
