package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/seqkit/component"
)

// Summary displays what the application started with.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	out             io.Writer
}

// NewSummary creates a summary that writes to out.
func NewSummary(serviceName, version string, out io.Writer) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		out:         out,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display writes the header followed by one line per component with its live health.
func (s *Summary) Display(ctx context.Context, registry *component.Registry) {
	if s.out == io.Discard {
		return
	}
	fmt.Fprintf(s.out, "%s %s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())

	var comps []component.Component
	if registry != nil {
		comps = registry.All()
	}
	if len(comps) == 0 {
		fmt.Fprintf(s.out, "   └── No components registered\n")
		return
	}

	healthy := 0
	for i, c := range comps {
		h := c.Health(ctx)
		if h.Status == component.StatusHealthy {
			healthy++
		}
		line := c.Name()
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name != "" {
				line = desc.Name
			}
			line = fmt.Sprintf("%s [%s] %s", line, desc.Type, desc.Details)
		}
		if h.Message != "" {
			line += " (" + h.Message + ")"
		}
		fmt.Fprintf(s.out, "   %s %s %s\n", treePrefix(i, len(comps)), healthStatusIcon(h.Status), line)
	}

	if healthy == len(comps) {
		fmt.Fprintf(s.out, "All components healthy (%d/%d)\n", healthy, len(comps))
	} else {
		fmt.Fprintf(s.out, "Some components have issues (%d/%d healthy)\n", healthy, len(comps))
	}
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✓"
	case component.StatusDegraded:
		return "!"
	case component.StatusUnhealthy:
		return "✗"
	default:
		return "?"
	}
}
