package out

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	reportout "chronos/internal/modules/report/port/out"
)

type SystemClipboard struct{}

func NewSystemClipboard() reportout.Clipboard {
	return SystemClipboard{}
}

func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	return clipboard.WriteAll(text)
}

// MemoryClipboard keeps the last copied text. Replay and tests use it.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

func (c *MemoryClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

func (c *MemoryClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}
