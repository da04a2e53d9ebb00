package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var buf bytes.Buffer
	c := newCounter(&buf, "Importing", 5, true)

	c.Step("Letter to Mary")
	assert.Equal(t, "\rImporting 1/5  Letter to Mary", buf.String())

	buf.Reset()
	c.Step("Map")
	assert.Equal(t, "\rImporting 2/5  Map"+strings.Repeat(" ", 11), buf.String(), "shorter line pads over the previous one")

	buf.Reset()
	c.Done()
	assert.Equal(t, "\r"+strings.Repeat(" ", 29)+"\r", buf.String())
}

func TestCounter_Quiet(t *testing.T) {
	var buf bytes.Buffer

	small := newCounter(&buf, "Exporting", 4, true)
	small.Step("a")
	small.Done()

	piped := newCounter(&buf, "Exporting", 100, false)
	piped.Step("a")
	piped.Done()

	assert.Empty(t, buf.String())
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "Deeds of Ha…", clip("Deeds of Hampstead", 12))
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Vacuuming", true)
	s.every = time.Millisecond

	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "⠋ Vacuuming...")
	assert.True(t, strings.HasSuffix(out, "\r"), "line cleared on stop")
}

func TestSpinner_NotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Vacuuming", false)
	s.Start()
	s.Stop()
	assert.Empty(t, buf.String())
}
