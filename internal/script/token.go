package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pxlr/pxlr/internal/errors"
)

// tokenize splits a command line into tokens. Tokens are separated by
// whitespace; double quotes group a token with spaces in it. A `--`
// outside quotes starts a comment that runs to the end of the line.
func tokenize(line string) ([]string, error) {
	var (
		tokens []string
		cur    strings.Builder
		quoted bool
		has    bool
	)
	flush := func() {
		if has {
			tokens = append(tokens, cur.String())
			cur.Reset()
			has = false
		}
	}
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if quoted {
				// Closing quote ends the token even if empty.
				tokens = append(tokens, cur.String())
				cur.Reset()
				has = false
			} else {
				flush()
			}
			quoted = !quoted
		case !quoted && r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			flush()
			return tokens, nil
		case !quoted && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
			has = true
		}
	}
	if quoted {
		return nil, errors.E(errors.Op("script.tokenize"), errors.KindParse, "unterminated quote")
	}
	flush()
	return tokens, nil
}

// parseInt converts a token to an int with a parse-kinded error.
func parseInt(op errors.Op, tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.E(op, errors.KindParse, fmt.Sprintf("expected a number, got %q", tok))
	}
	return n, nil
}

// parseFloat converts a token to a float with a parse-kinded error.
func parseFloat(op errors.Op, tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errors.E(op, errors.KindParse, fmt.Sprintf("expected a number, got %q", tok))
	}
	return f, nil
}

// splitEquals normalizes `key=value` and `key = value` argument forms
// into plain `key value...` tokens.
func splitEquals(args []string) []string {
	var out []string
	for _, a := range args {
		if a == "=" {
			continue
		}
		if i := strings.IndexByte(a, '='); i > 0 && i < len(a)-1 {
			out = append(out, a[:i], a[i+1:])
			continue
		}
		out = append(out, strings.TrimSuffix(strings.TrimPrefix(a, "="), "="))
	}
	// Drop empties left by a bare leading/trailing '='.
	n := out[:0]
	for _, a := range out {
		if a != "" {
			n = append(n, a)
		}
	}
	return n
}
