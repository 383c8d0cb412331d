package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/kbukum/beankit/di"
	"github.com/kbukum/beankit/observability"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Summary tracks and displays the application bootstrap process.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	out             io.Writer
}

// NewSummary creates a new bootstrap summary tracker writing to stdout.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		out:         os.Stdout,
	}
}

// SetOutput redirects the summary.
func (s *Summary) SetOutput(w io.Writer) {
	s.out = w
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// DisplaySummary prints every registered bean with its state and the
// container health.
func (s *Summary) DisplaySummary(ctx context.Context, c *di.Container) {
	w := s.out
	fmt.Fprintf(w, "\n%s %s started in %.2fs\n\n",
		bold(s.serviceName), s.version, s.startupDuration.Seconds())

	regs := c.Registrations()
	if len(regs) == 0 {
		fmt.Fprintf(w, "   └── No beans registered\n\n")
		return
	}

	fmt.Fprintf(w, "%s (%d)\n", bold("Beans"), len(regs))
	active := 0
	for i, r := range regs {
		prefix := "├──"
		if i == len(regs)-1 {
			prefix = "└──"
		}
		if r.State == di.StateActive {
			active++
		}
		fmt.Fprintf(w, "   %s %s %s %s %s\n", prefix, beanIcon(r), r.ID, gray(typeLabel(r)), markers(r))
	}
	fmt.Fprintf(w, "\n%s singletons active, %d prototype\n", green(active), countScope(regs, di.Prototype))

	h := c.CheckHealth(ctx)
	msg := ""
	if h.Message != "" {
		msg = " (" + h.Message + ")"
	}
	fmt.Fprintf(w, "%s %s: %s%s\n\n", bold("Health"), h.Name, healthLabel(h.Status), msg)
}

func typeLabel(r di.Registration) string {
	if r.Type == nil {
		return ""
	}
	return r.Type.String()
}

func markers(r di.Registration) string {
	parts := []string{r.Scope.String()}
	if r.Scope == di.Singleton {
		parts = append(parts, r.Init.String())
	}
	if r.Primary {
		parts = append(parts, "primary")
	}
	if r.Qualifier != "" {
		parts = append(parts, "@"+r.Qualifier)
	}
	if r.Instantiations > 0 {
		parts = append(parts, fmt.Sprintf("created=%d", r.Instantiations))
	}
	return cyan("[" + strings.Join(parts, ", ") + "]")
}

func beanIcon(r di.Registration) string {
	switch {
	case r.Scope == di.Prototype:
		return cyan("↻")
	case r.State == di.StateActive:
		return green("✓")
	case r.State == di.StateDestroyed:
		return gray("-")
	case r.Init == di.Lazy:
		return yellow("…")
	default:
		return red("✗")
	}
}

func healthLabel(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusUp:
		return green(string(status))
	case observability.HealthStatusDegraded:
		return yellow(string(status))
	default:
		return red(string(status))
	}
}

func countScope(regs []di.Registration, scope di.Scope) int {
	n := 0
	for _, r := range regs {
		if r.Scope == scope {
			n++
		}
	}
	return n
}
