// Package casing converts free text into camelCase, kebab-case and dot.case.
//
// Words are separated by runs of whitespace, underscores or hyphens.
// Whitespace follows the JavaScript definition: ASCII tab, newline,
// vertical tab, form feed and carriage return, every Unicode separator
// (category Z) and the byte order mark.
package casing

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const space = `\t\n\v\f\r\p{Z}\x{FEFF}`

var (
	blank          = regexp.MustCompile(`^[` + space + `]*$`)
	edgeSeparators = regexp.MustCompile(`^[` + space + `_-]+|[` + space + `_-]+$`)
	separatorRun   = regexp.MustCompile(`[` + space + `_-]+`)

	camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	spaceRun      = regexp.MustCompile(`[_` + space + `]+`)
	hyphenRun     = regexp.MustCompile(`-+`)
	edgeHyphens   = regexp.MustCompile(`^-+|-+$`)
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMissingInput    = fmt.Errorf("%w: input cannot be nil", ErrInvalidArgument)
	ErrWrongType       = fmt.Errorf("%w: input must be a string", ErrInvalidArgument)
	ErrUnknownStyle    = errors.New("unknown case style")
)

// Styles accepted by Convert.
const (
	StyleCamel = "camel"
	StyleDot   = "dot"
	StyleKebab = "kebab"
)

// ToCamelCase lowercases the first word and capitalizes every following
// word, joining them without a separator.
//
//	ToCamelCase("hello world")    // "helloWorld"
//	ToCamelCase("Make-this_cool") // "makeThisCool"
func ToCamelCase(s string) string {
	var b strings.Builder
	for i, word := range words(s) {
		if i == 0 {
			b.WriteString(lower(word))
			continue
		}
		first, size := utf8.DecodeRuneInString(word)
		b.WriteString(upper(string(first)))
		b.WriteString(lower(word[size:]))
	}
	return b.String()
}

// ToDotCase lowercases every word and joins them with dots.
//
//	ToDotCase("Make-this_cool") // "make.this.cool"
func ToDotCase(s string) string {
	ws := words(s)
	for i, word := range ws {
		ws[i] = lower(word)
	}
	return strings.Join(ws, ".")
}

// ToKebabCase splits on lower-to-upper transitions as well as on
// separators, so camelCase input is broken into words too.
//
//	ToKebabCase("Hello World")   // "hello-world"
//	ToKebabCase("makeThis_cool") // "make-this-cool"
func ToKebabCase(s string) string {
	if blank.MatchString(s) {
		return ""
	}

	out := camelBoundary.ReplaceAllString(s, "${1}-${2}")
	out = spaceRun.ReplaceAllString(out, "-")
	out = lower(out)
	out = hyphenRun.ReplaceAllString(out, "-")
	return edgeHyphens.ReplaceAllString(out, "")
}

// CamelCase is ToCamelCase for values of unknown type, such as decoded
// JSON. Anything that is not a string is rejected.
func CamelCase(v any) (string, error) {
	s, ok := asString(v)
	if !ok {
		return "", fmt.Errorf("%w: input must be a string, got %T", ErrInvalidArgument, v)
	}
	return ToCamelCase(s), nil
}

// DotCase is ToDotCase for values of unknown type.
func DotCase(v any) (string, error) {
	s, ok := asString(v)
	if !ok {
		return "", fmt.Errorf("%w: input must be a string, got %T", ErrInvalidArgument, v)
	}
	return ToDotCase(s), nil
}

// KebabCase is ToKebabCase for values of unknown type. A nil input returns
// ErrMissingInput, any other non-string returns ErrWrongType.
func KebabCase(v any) (string, error) {
	if isNil(v) {
		return "", ErrMissingInput
	}
	s, ok := asString(v)
	if !ok {
		return "", fmt.Errorf("%w, got %T", ErrWrongType, v)
	}
	return ToKebabCase(s), nil
}

// Convert applies the named style to v.
func Convert(style string, v any) (string, error) {
	switch strings.ToLower(style) {
	case StyleCamel:
		return CamelCase(v)
	case StyleDot:
		return DotCase(v)
	case StyleKebab:
		return KebabCase(v)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
}

func words(s string) []string {
	trimmed := edgeSeparators.ReplaceAllString(s, "")
	if trimmed == "" {
		return nil
	}
	return separatorRun.Split(trimmed, -1)
}

// Casers keep state between calls and must not be shared across goroutines.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	}

	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// isNil reports untyped nil and nil pointers. Nil maps, slices and other
// nil-able kinds are values of the wrong type, not missing input.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
