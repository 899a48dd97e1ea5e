package sweep

import (
	"io"
	"log"

	"microlife/pkg/sims/life"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

// NewPrinter returns a printer for the user's locale, falling back to en-US.
func NewPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("microlife: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// Report writes a human-readable summary.
func (s Summary) Report(w io.Writer, p *message.Printer) {
	p.Fprintf(w, "Runs: %d x %d frames\n", len(s.Runs), s.Frames)
	p.Fprintf(w, "Reseeds: %d (%.2f per 1000 frames)\n", s.TotalReseeds, s.ReseedsPerThousand())
	p.Fprintf(w, "Mean frames to first reseed: %.1f\n", s.MeanFirstReseed)
	p.Fprintf(w, "Runs that never stalled: %d\n", s.NeverStalled)
	p.Fprintf(w, "Mean population: %.2f\n", s.MeanPopulation)
	for _, cause := range []life.Cause{life.CauseExtinct, life.CauseStill, life.CauseOscillating} {
		p.Fprintf(w, "  %-12s %d\n", cause.String()+":", s.Causes[cause])
	}
}
