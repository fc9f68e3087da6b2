package diag

// DefaultMaxErrors bounds how many diagnostics a Collector accepts before it
// stops the parse outright, so a single badly malformed file can't produce
// an unbounded diagnostic stream.
const DefaultMaxErrors = 100

// Collector accumulates diagnostics during a lex/parse pass and tracks
// whether the caller should abandon the pass because too many errors piled
// up.
type Collector struct {
	maxErrors int
	diags     []Diagnostic
}

// NewCollector creates a Collector bounded by maxErrors. A non-positive
// value falls back to DefaultMaxErrors.
func NewCollector(maxErrors int) *Collector {
	if maxErrors <= 0 {
		maxErrors = DefaultMaxErrors
	}
	return &Collector{maxErrors: maxErrors}
}

// Add records a diagnostic. It returns false once the collector has reached
// its error budget and the caller should stop parsing — callers typically
// convert that into a Fatal diagnostic and unwind.
func (c *Collector) Add(d Diagnostic) bool {
	c.diags = append(c.diags, d)
	if d.Severity < Error {
		return true
	}
	return c.Count(Error)+c.Count(Fatal) < c.maxErrors
}

// Exhausted reports whether the error budget has already been spent.
func (c *Collector) Exhausted() bool {
	return c.Count(Error)+c.Count(Fatal) >= c.maxErrors
}

func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Diagnostics returns the accumulated diagnostics in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

// Report builds a Report from the collected diagnostics for the given file
// and source text.
func (c *Collector) Report(file, source string) Report {
	return Report{File: file, Source: source, Diagnostics: c.diags}
}
