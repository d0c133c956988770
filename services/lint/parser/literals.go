// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// decodeString returns the value of a JavaScript string literal given its
// raw source text, quotes included.
func decodeString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}

		i++
		switch e := body[i]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\n':
			// Line continuation.
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := parseHex(body, i+1, 2); ok {
				sb.WriteRune(r)
				i += 2
			} else {
				sb.WriteByte(e)
			}
		case 'u':
			r, consumed := decodeUnicodeEscape(body, i+1)
			if consumed == 0 {
				sb.WriteByte(e)
				continue
			}
			i += consumed
			if utf16.IsSurrogate(r) && i+2 < len(body) && body[i+1] == '\\' && body[i+2] == 'u' {
				if low, n := decodeUnicodeEscape(body, i+3); n > 0 {
					if combined := utf16.DecodeRune(r, low); combined != utf8.RuneError {
						r = combined
						i += 2 + n
					}
				}
			}
			sb.WriteRune(r)
		default:
			// Identity escapes: \' \" \\ and any other character.
			sb.WriteByte(e)
		}
	}
	return sb.String()
}

// decodeUnicodeEscape decodes the part of a \u escape starting at start,
// either XXXX or {X...}. It returns the rune and the number of bytes consumed,
// or 0 if the escape is malformed.
func decodeUnicodeEscape(s string, start int) (rune, int) {
	if start < len(s) && s[start] == '{' {
		end := strings.IndexByte(s[start:], '}')
		if end <= 1 {
			return 0, 0
		}
		r, ok := parseHex(s, start+1, end-1)
		if !ok || r > utf8.MaxRune {
			return 0, 0
		}
		return r, end + 1
	}
	r, ok := parseHex(s, start, 4)
	if !ok {
		return 0, 0
	}
	return r, 4
}

func parseHex(s string, start, n int) (rune, bool) {
	if start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// parseNumber returns the value of a JavaScript numeric literal.
//
// Decimal, exponent, hex (0x), octal (0o and legacy 0NN), binary (0b) and
// numeric separators are supported. BigInt literals (123n) yield *big.Int.
// Literals beyond float64 range yield ±Inf, as in JavaScript. Unparseable
// input yields NaN rather than an error; the grammar has already accepted the
// token.
func parseNumber(raw string) any {
	s := strings.ReplaceAll(raw, "_", "")

	if strings.HasSuffix(s, "n") {
		if n, ok := new(big.Int).SetString(strings.TrimSuffix(s, "n"), 0); ok {
			return n
		}
		return math.NaN()
	}

	if len(s) > 1 && s[0] == '0' && isIntegerPrefix(s[1]) {
		if n, ok := new(big.Int).SetString(s, 0); ok {
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

func isIntegerPrefix(c byte) bool {
	switch c {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return c >= '0' && c <= '9'
}
