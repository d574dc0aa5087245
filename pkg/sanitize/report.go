package sanitize

// Report counts what a single sanitizer run removed or rewrote. It has no influence on the
// output, callers use it for audit logging and metrics.
type Report struct {
	Scripts           int  // Script elements removed with their content.
	Schemes           int  // URL attributes neutralized to "#".
	Handlers          int  // Inline event handler attributes removed.
	Styles            int  // Style attributes removed or trimmed.
	EmbedsKept        int  // Iframes re-emitted in canonical form.
	EmbedsDropped     int  // Iframes removed for a missing or unknown src.
	ContainersDropped int  // Embed containers removed along with a rejected iframe.
	Stripped          int  // Denylisted tags and malformed names removed.
	Comments          int  // Comments removed.
	Failed            bool // Input could not be processed, output is empty.
}

// Removed returns the total number of constructs removed or rewritten.
func (r Report) Removed() int {
	return r.Scripts + r.Schemes + r.Handlers + r.Styles + r.EmbedsDropped +
		r.ContainersDropped + r.Stripped + r.Comments
}

// Clean reports whether the input passed through without any security relevant change.
func (r Report) Clean() bool {
	return !r.Failed && r.Removed() == 0
}

// Add accumulates o into r.
func (r *Report) Add(o Report) {
	r.Scripts += o.Scripts
	r.Schemes += o.Schemes
	r.Handlers += o.Handlers
	r.Styles += o.Styles
	r.EmbedsKept += o.EmbedsKept
	r.EmbedsDropped += o.EmbedsDropped
	r.ContainersDropped += o.ContainersDropped
	r.Stripped += o.Stripped
	r.Comments += o.Comments
	r.Failed = r.Failed || o.Failed
}
