// Package progress draws status lines on stderr for long catalog jobs:
// a document counter for import and export, and a spinner for vacuum.
// Nothing is drawn unless stderr is a terminal, so scripts, pipes and tests
// see only the command's real output on stdout.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
)

// minItems is the smallest batch worth a counter line.
const minItems = 5

// maxTitle caps the document title shown beside the count.
const maxTitle = 40

// Counter reports progress through a known number of documents.
type Counter struct {
	w     io.Writer
	label string
	total int
	done  int
	live  bool
	width int // widest line drawn, for clearing
}

// New returns a counter for total items that draws on stderr.
func New(label string, total int) *Counter {
	return newCounter(os.Stderr, label, total, isTerminal(os.Stderr))
}

func newCounter(w io.Writer, label string, total int, live bool) *Counter {
	return &Counter{w: w, label: label, total: total, live: live && total >= minItems}
}

// Step records one finished item and redraws the line with its title.
func (c *Counter) Step(title string) {
	c.done++
	if !c.live {
		return
	}
	line := fmt.Sprintf("%s %d/%d  %s", c.label, c.done, c.total, clip(title, maxTitle))
	c.draw(line)
}

// Done clears the line so the command's summary starts on a clean row.
func (c *Counter) Done() {
	if !c.live || c.width == 0 {
		return
	}
	fmt.Fprintf(c.w, "\r%*s\r", c.width, "")
	c.width = 0
}

func (c *Counter) draw(line string) {
	n := utf8.RuneCountInString(line)
	pad := max(c.width-n, 0)
	fmt.Fprintf(c.w, "\r%s%*s", line, pad, "")
	c.width = max(c.width, n)
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// Spinner animates while a single call of unknown length runs, such as
// VACUUM on a large catalog.
type Spinner struct {
	w      io.Writer
	label  string
	live   bool
	every  time.Duration
	stop   chan struct{}
	wg     sync.WaitGroup
	frames []string
}

// NewSpinner returns a spinner that draws on stderr.
func NewSpinner(label string) *Spinner {
	return newSpinner(os.Stderr, label, isTerminal(os.Stderr))
}

func newSpinner(w io.Writer, label string, live bool) *Spinner {
	return &Spinner{
		w:      w,
		label:  label,
		live:   live,
		every:  100 * time.Millisecond,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins animating in the background. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	if !s.live || s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.stop)
}

func (s *Spinner) run(stop <-chan struct{}) {
	defer s.wg.Done()
	t := time.NewTicker(s.every)
	defer t.Stop()
	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r%s %s...", s.frames[i%len(s.frames)], s.label)
		select {
		case <-stop:
			fmt.Fprintf(s.w, "\r%*s\r", utf8.RuneCountInString(s.label)+5, "")
			return
		case <-t.C:
		}
	}
}

// Stop halts the animation and clears its line. It waits for the last
// frame so nothing is drawn after Stop returns.
func (s *Spinner) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.wg.Wait()
	s.stop = nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
