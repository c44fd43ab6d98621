package ui

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate = `{{ string . "prefix" }} {{ counters . }} {{ bar . }} {{ percent . }} {{ etime . }}`

// Progress tracks completed (source, language) pairs on a terminal bar.
// A nil *Progress is a valid no-op.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a bar for total pairs writing to w
func NewProgress(w io.Writer, total int) *Progress {
	bar := pb.New(total)
	bar.SetWriter(w)
	bar.SetTemplateString(progressTemplate)
	bar.Set("prefix", "Aggregating")
	bar.Start()
	return &Progress{bar: bar}
}

// Done advances the bar and shows the pair that just completed
func (p *Progress) Done(source, language string) {
	if p == nil {
		return
	}
	p.bar.Set("prefix", source+"/"+language)
	p.bar.Increment()
}

// Finish stops the bar
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.bar.Set("prefix", "Done")
	p.bar.Finish()
}
