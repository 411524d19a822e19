package xtal

import (
	"log"
	"os"
)

// Logger is where non-fatal warnings (NoMatch, AmbiguousReplacementMap,
// DegenerateAlignment) and, when a caller's Verbose flag is set,
// human-readable progress messages are written. Gochem logs the same way
// (plain "log" package, see align/lovo.go and solvation.go) rather than
// pulling in a structured logging dependency it never needed.
var Logger = log.New(os.Stderr, "xtalgraph: ", 0)

// Warnf reports a non-fatal Error through Logger.
func Warnf(k Kind, format string, args ...interface{}) {
	Logger.Printf("warning [%s] "+format, append([]interface{}{k}, args...)...)
}

// Infof reports a progress message, gated by the caller's verbose flag the
// way align.Options-derived callers in gochem gate their own log.Println
// calls.
func Infof(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	Logger.Printf(format, args...)
}
