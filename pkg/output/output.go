package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jwalton/go-supportscolor"

	"github.com/robostack/rigcheck/pkg/check"
	"github.com/robostack/rigcheck/pkg/servicectl"
)

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, yellow, reset = "", "", "", ""
	}
}

// PrintStart announces a check before it runs, so a hung diagnostic is
// attributable from the output alone.
func PrintStart(w io.Writer, name string) {
	fmt.Fprintf(w, "---> %s\n", name)
}

// PrintResult outputs a check result with colored status.
func PrintResult(w io.Writer, r check.Result) {
	if r.Skipped() {
		fmt.Fprintf(w, "%s[SKIP]%s %s\n", yellow, reset, r.Name)
		return
	}

	label := r.Name
	if r.Duration > 0 {
		label = fmt.Sprintf("%s (%s)", r.Name, r.Duration.Round(time.Millisecond))
	}
	if r.OK() {
		fmt.Fprintf(w, "%s[OK]%s %s\n", green, reset, label)
	} else {
		fmt.Fprintf(w, "%s[FAIL]%s %s\n", red, reset, label)
	}
	for _, d := range r.Details {
		fmt.Fprintf(w, "      %s\n", d)
	}
}

// PrintServiceStatus outputs one unit's activation state.
func PrintServiceStatus(w io.Writer, s servicectl.Status) {
	color := green
	if !s.Active {
		color = yellow
	}
	fmt.Fprintf(w, "service %s: %s%s%s\n", s.Unit, color, s, reset)
}

// PrintSummary writes the counts line and the overall verdict sentence.
func PrintSummary(w io.Writer, passed, failed int, interrupted bool) {
	fmt.Fprintf(w, "\n%d passed, %d failed\n", passed, failed)
	switch {
	case interrupted:
		fmt.Fprintf(w, "%sverification interrupted before all checks completed%s\n", yellow, reset)
	case failed > 0:
		fmt.Fprintf(w, "%srobot is not ready: %d check(s) failed%s\n", red, failed, reset)
	default:
		fmt.Fprintf(w, "%sall checks passed, robot is ready%s\n", green, reset)
	}
}
