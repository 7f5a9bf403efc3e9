package main

import (
	"fmt"
	"strings"
)

// Saved diagrams are mostly fixed-point numbers, so runs of zeros and the
// ".000000," tail of whole numbers are folded into backtick escapes:
//
//	``  a literal backtick
//	`3  000
//	`6  000000
//	`.  .000000,
//	`>  ;>>
const escape = '`'

// Compress folds a serialised diagram. The escapes are chosen left to right
// over the input so that Decompress always recovers it exactly.
func Compress(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		rest := text[i:]
		switch {
		case rest[0] == escape:
			b.WriteString("``")
			i++
		case strings.HasPrefix(rest, ".000000,"):
			b.WriteString("`.")
			i += len(".000000,")
		case strings.HasPrefix(rest, "000000"):
			b.WriteString("`6")
			i += 6
		case strings.HasPrefix(rest, "000"):
			b.WriteString("`3")
			i += 3
		case strings.HasPrefix(rest, ";>>"):
			b.WriteString("`>")
			i += 3
		default:
			b.WriteByte(rest[0])
			i++
		}
	}
	return b.String()
}

// Decompress expands the escapes written by Compress in a single scan.
func Decompress(text string) (string, error) {
	var b strings.Builder
	b.Grow(len(text) * 2)

	for i := 0; i < len(text); i++ {
		if text[i] != escape {
			b.WriteByte(text[i])
			continue
		}
		if i+1 >= len(text) {
			return "", &ParseError{Offset: i, Reason: "dangling escape"}
		}
		i++
		switch text[i] {
		case escape:
			b.WriteByte(escape)
		case '3':
			b.WriteString("000")
		case '6':
			b.WriteString("000000")
		case '.':
			b.WriteString(".000000,")
		case '>':
			b.WriteString(";>>")
		default:
			return "", &ParseError{Offset: i - 1, Reason: fmt.Sprintf("unknown escape %q", text[i-1:i+1])}
		}
	}
	return b.String(), nil
}

