// Package flagx lets several independent parsers share os.Args: each one
// keeps only the flags it owns and parses those with its own FlagSet.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps the flags listed in owned together with their values.
//
// Both "-x value" and "-x=value" forms are recognised. A token starting with
// "-" is never consumed as a value. The result is never nil.
func FilterArgs(args []string, owned []string) []string {
	known := make(map[string]bool, len(owned))
	for _, name := range owned {
		known[name] = true
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if known[name] {
				kept = append(kept, arg)
			}
			continue
		}

		if !known[arg] {
			continue
		}
		kept = append(kept, arg)
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			kept = append(kept, args[next])
			i = next
		}
	}
	return kept
}

// ConfigFileFlag returns the value of -c / -config in args (without the
// program name), or "" when neither is given. The last occurrence wins.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

