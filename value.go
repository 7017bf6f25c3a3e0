package mdnorm

import (
	"fmt"
	"reflect"
)

// NormalizeValue runs the full pass on a dynamically typed value. string,
// []byte, *string and fmt.Stringer are accepted; nil and any other value
// normalize to "".
func (n *Normalizer) NormalizeValue(v any) string {
	return n.Normalize(textOf(v))
}

// NormalizeStreamingValue is NormalizeValue for the streaming pass.
func (n *Normalizer) NormalizeStreamingValue(v any) string {
	return n.NormalizeStreaming(textOf(v))
}

// NormalizeValue runs the full pass on v with the built-in lexicon.
func NormalizeValue(v any) string {
	return defaultNormalizer().NormalizeValue(v)
}

// NormalizeStreamingValue runs the streaming pass on v with the built-in
// lexicon.
func NormalizeStreamingValue(v any) string {
	return defaultNormalizer().NormalizeStreamingValue(v)
}

// textOf coerces v to text. A Stringer that panics yields "".
func textOf(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()

	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case fmt.Stringer:
		if rv := reflect.ValueOf(t); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return t.String()
	default:
		return ""
	}
}
