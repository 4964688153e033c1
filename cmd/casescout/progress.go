package main

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// progress shows a spinner on stderr. It does nothing unless stderr is a
// file, so tests writing to buffers never see spinner output.
type progress struct {
	s *spinner.Spinner
}

func newProgress(w io.Writer) *progress {
	dst := w
	if sw, ok := w.(*syncWriter); ok {
		dst = sw.w
	}
	f, ok := dst.(*os.File)
	if !ok {
		return &progress{}
	}
	// Frames go through w so they never split a log line; f only decides
	// whether stderr is a terminal.
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriterFile(f))
	s.Writer = w
	return &progress{s: s}
}

// Start shows msg next to the spinner.
func (p *progress) Start(msg string) {
	if p.s == nil {
		return
	}
	p.s.Suffix = " " + msg
	p.s.Start()
}

// Update replaces the message.
func (p *progress) Update(msg string) {
	if p.s == nil {
		return
	}
	p.s.Lock()
	p.s.Suffix = " " + msg
	p.s.Unlock()
}

// Pause hides the spinner so a line can be printed cleanly.
func (p *progress) Pause() {
	if p.s == nil {
		return
	}
	p.s.Stop()
}

// Resume restarts the spinner after Pause.
func (p *progress) Resume() {
	if p.s == nil {
		return
	}
	p.s.Start()
}

// Stop removes the spinner.
func (p *progress) Stop() {
	if p.s == nil {
		return
	}
	p.s.Stop()
}
