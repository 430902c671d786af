package probe

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/buger/jsonparser"
)

var (
	errBadEscape       = errors.New("bad string escape")
	errMalformedObject = errors.New("malformed object")
)

// Render formats a JSON document as a dict/list literal: single-quoted
// strings, True/False/None, ": " and ", " separators, object key order kept.
// A repeated key keeps its first position and its last value.
func Render(data []byte) (string, error) {
	if !json.Valid(data) {
		return "", ErrInvalidJSON
	}
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	out, err := renderValue(value, dataType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return out, nil
}

func renderValue(value []byte, dataType jsonparser.ValueType) (string, error) {
	switch dataType {
	case jsonparser.Object:
		return renderObject(value)
	case jsonparser.Array:
		return renderArray(value)
	case jsonparser.String:
		s, err := decodeString(value)
		if err != nil {
			return "", err
		}
		return quote(s), nil
	case jsonparser.Number:
		return renderNumber(string(value)), nil
	case jsonparser.Boolean:
		if string(value) == "true" {
			return "True", nil
		}
		return "False", nil
	case jsonparser.Null:
		return "None", nil
	}
	return "", fmt.Errorf("unexpected value %q", value)
}

// renderObject walks the members itself so that keys are unescaped exactly
// once and may hold lone surrogates; values are tokenized by jsonparser.
func renderObject(value []byte) (string, error) {
	var keys []string
	values := make(map[string]string)

	i := skipSpace(value, 1)
	if i < len(value) && value[i] == '}' {
		return "{}", nil
	}
	for {
		if i >= len(value) || value[i] != '"' {
			return "", errMalformedObject
		}
		end := closingQuote(value, i+1)
		if end < 0 {
			return "", errMalformedObject
		}
		k, err := decodeString(value[i+1 : end])
		if err != nil {
			return "", err
		}
		i = skipSpace(value, end+1)
		if i >= len(value) || value[i] != ':' {
			return "", errMalformedObject
		}

		v, dt, offset, err := jsonparser.Get(value[i+1:])
		if err != nil {
			return "", err
		}
		rendered, err := renderValue(v, dt)
		if err != nil {
			return "", err
		}
		size := len(v)
		if dt == jsonparser.String {
			size += 2
		}
		i = skipSpace(value, i+1+offset+size)

		// quoted form is unique per key, lone surrogates included
		qk := quote(k)
		if _, seen := values[qk]; !seen {
			keys = append(keys, qk)
		}
		values[qk] = rendered

		if i < len(value) && value[i] == ',' {
			i = skipSpace(value, i+1)
			continue
		}
		if i < len(value) && value[i] == '}' {
			break
		}
		return "", errMalformedObject
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for n, k := range keys {
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(values[k])
	}
	sb.WriteByte('}')
	return sb.String(), nil
}

func skipSpace(data []byte, i int) int {
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

// closingQuote returns the index of the quote ending the string that starts
// at i, or -1.
func closingQuote(data []byte, i int) int {
	for ; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

func renderArray(value []byte) (string, error) {
	var items []string
	var inner error
	_, err := jsonparser.ArrayEach(value, func(v []byte, dt jsonparser.ValueType, _ int, err error) {
		if inner != nil {
			return
		}
		if err != nil {
			inner = err
			return
		}
		rendered, err := renderValue(v, dt)
		if err != nil {
			inner = err
			return
		}
		items = append(items, rendered)
	})
	if err != nil {
		return "", err
	}
	if inner != nil {
		return "", inner
	}
	return "[" + strings.Join(items, ", ") + "]", nil
}

// renderNumber keeps integers verbatim and prints floats the shortest way,
// switching to exponent form outside [1e-4, 1e16).
func renderNumber(raw string) string {
	if !strings.ContainsAny(raw, ".eE") {
		if raw == "-0" {
			return "0"
		}
		return raw
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return raw
	}
	if math.IsInf(f, 0) {
		if f > 0 {
			return "inf"
		}
		return "-inf"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// decodeString unescapes the contents of a JSON string. Surrogate pairs are
// combined; a lone surrogate is kept as its own code point.
func decodeString(raw []byte) ([]rune, error) {
	out := make([]rune, 0, len(raw))
	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			r, size := utf8.DecodeRune(raw[i:])
			out = append(out, r)
			i += size
			continue
		}
		if i+1 >= len(raw) {
			return nil, errBadEscape
		}
		switch c := raw[i+1]; c {
		case '"', '\\', '/':
			out = append(out, rune(c))
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			r, ok := hex4(raw[i+2:])
			if !ok {
				return nil, errBadEscape
			}
			i += 6
			if r >= 0xd800 && r < 0xdc00 && i+1 < len(raw) && raw[i] == '\\' && raw[i+1] == 'u' {
				if low, ok := hex4(raw[i+2:]); ok && low >= 0xdc00 && low <= 0xdfff {
					r = utf16.DecodeRune(r, low)
					i += 6
				}
			}
			out = append(out, r)
			continue
		default:
			return nil, errBadEscape
		}
		i += 2
	}
	return out, nil
}

func hex4(b []byte) (rune, bool) {
	if len(b) < 4 {
		return 0, false
	}
	n, err := strconv.ParseUint(string(b[:4]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

// quote wraps s in single quotes, or double quotes when s holds a single
// quote and no double quote.
func quote(s []rune) string {
	hasSingle, hasDouble := false, false
	for _, r := range s {
		switch r {
		case '\'':
			hasSingle = true
		case '"':
			hasDouble = true
		}
	}
	q := '\''
	if hasSingle && !hasDouble {
		q = '"'
	}

	var sb strings.Builder
	sb.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case !unicode.IsPrint(r):
			if r <= 0xff {
				fmt.Fprintf(&sb, `\x%02x`, r)
			} else if r <= 0xffff {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				fmt.Fprintf(&sb, `\U%08x`, r)
			}
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(q)
	return sb.String()
}
