package bench

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/framekit/slotmap"
)

// Report summarizes one completed run. CASRetries is only meaningful for
// the lock-free disciplines and reads zero otherwise; FinalInUse is the
// arena's approximate occupancy when the workers stopped (the slot count
// for a fill run, zero for a balanced churn run).
type Report struct {
	Discipline slotmap.Discipline
	Workers    int
	SlotCount  int64
	Ops        int64
	Duration   time.Duration
	OpsPerSec  float64
	CASRetries uint64
	FinalInUse int64
}

// Format renders the report as aligned key/value lines with grouped digits.
func (rep Report) Format() string {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	fmt.Fprintf(&b, "discipline:   %s\n", rep.Discipline)
	p.Fprintf(&b, "workers:      %d\n", rep.Workers)
	p.Fprintf(&b, "slots:        %d\n", rep.SlotCount)
	p.Fprintf(&b, "ops:          %d\n", rep.Ops)
	fmt.Fprintf(&b, "duration:     %s\n", rep.Duration.Round(time.Microsecond))
	p.Fprintf(&b, "ops/sec:      %.0f\n", rep.OpsPerSec)
	p.Fprintf(&b, "cas retries:  %d\n", rep.CASRetries)
	p.Fprintf(&b, "final in use: %d\n", rep.FinalInUse)
	return b.String()
}
