package utils

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_StartStop(t *testing.T) {
	assert := assert.New(t)

	var out syncBuffer
	s := NewSpinner("working", time.Millisecond, false)
	s.SetWriter(&out)

	s.Stop() // stopping an idle spinner is a no-op
	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.StopWith("done")

	assert.Contains(out.String(), "working")
	assert.True(strings.HasSuffix(out.String(), "done"))

	// The spinner can be restarted.
	s.Start()
	s.StopWith("again")
	assert.True(strings.HasSuffix(out.String(), "again"))
}
