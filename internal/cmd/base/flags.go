package base

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// FlagSet wraps flag.FlagSet so commands can render their options in Help.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned to the caller instead of
// being printed by the flag package.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help returns the options section of a command's help text.
func (f *FlagSet) Help() string {
	var b strings.Builder

	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		if fl.DefValue != "" {
			fmt.Fprintf(&b, "\n  -%s=%s\n", fl.Name, fl.DefValue)
		} else {
			fmt.Fprintf(&b, "\n  -%s\n", fl.Name)
		}
		fmt.Fprintf(&b, "      %s\n", fl.Usage)
	})

	return strings.TrimRight(b.String(), "\n")
}
