package script

import (
	_ "embed"
	"strings"
)

//go:embed init.px
var defaultInit string

// Defaults runs the built-in startup script, installing the stock key
// bindings and baseline settings. It runs before any user configuration
// and is skipped entirely when the editor starts with `-u -`.
func (in *Interpreter) Defaults() error {
	return in.runLines("<init>", strings.NewReader(defaultInit))
}
