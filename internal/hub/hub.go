// Package hub assembles live log lines into entries and fans them out.
package hub

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/NoreeIsmael/Next-Project/internal/model"
	"github.com/NoreeIsmael/Next-Project/internal/pattern"
)

const (
	subscriberBuffer = 1024

	// flushInterval bounds how long a pending entry waits for continuation
	// lines before it is sealed and broadcast anyway.
	flushInterval = 500 * time.Millisecond
)

// pendingEntry collects an entry-start line plus its continuation lines for
// one log file until the next start line (or an idle flush) seals it.
type pendingEntry struct {
	chunk   strings.Builder
	touched time.Time
}

// Hub receives raw lines from the tailer, reassembles multi-line entries,
// and broadcasts LogEntry values to all subscribers. Lines from different
// files interleave on the input channel, so assembly is keyed by file.
type Hub struct {
	input       <-chan model.RawLine
	mu          sync.RWMutex
	subscribers []chan model.LogEntry
	dropped     int64
	pending     map[string]*pendingEntry
}

// New creates a Hub that reads from the input channel.
func New(input <-chan model.RawLine) *Hub {
	return &Hub{
		input:   input,
		pending: make(map[string]*pendingEntry),
	}
}

// Subscribe returns a buffered channel that will receive sealed log entries.
// Multiple consumers can subscribe; each gets a copy of every entry.
func (h *Hub) Subscribe() <-chan model.LogEntry {
	ch := make(chan model.LogEntry, subscriberBuffer)
	h.mu.Lock()
	h.subscribers = append(h.subscribers, ch)
	h.mu.Unlock()
	return ch
}

// Dropped returns the total number of entries dropped due to slow consumers.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Start begins reading from the input channel, assembling, and broadcasting.
// Blocks until the context is cancelled or the input channel is closed.
func (h *Hub) Start(ctx context.Context) {
	defer h.closeAll()

	flush := time.NewTicker(flushInterval)
	defer flush.Stop()

	for {
		select {
		case <-ctx.Done():
			h.flushAll()
			return
		case raw, ok := <-h.input:
			if !ok {
				h.flushAll()
				return
			}
			h.consume(raw)
		case <-flush.C:
			h.flushIdle()
		}
	}
}

// consume folds one raw line into the per-file pending entry. A start line
// seals whatever was pending for that file first; a continuation line with
// no open entry is an orphan and is dropped.
func (h *Hub) consume(raw model.RawLine) {
	if strings.TrimSpace(raw.Text) == "" {
		return
	}

	p := h.pending[raw.Source]
	switch {
	case pattern.IsStart(raw.Text):
		if p != nil {
			h.seal(raw.Source, p)
		}
		p = &pendingEntry{}
		p.chunk.WriteString(raw.Text)
		p.chunk.WriteByte('\n')
		p.touched = time.Now()
		h.pending[raw.Source] = p
	case p != nil:
		p.chunk.WriteString(raw.Text)
		p.chunk.WriteByte('\n')
		p.touched = time.Now()
	}
}

// seal parses the assembled chunk and broadcasts it, then clears the slot.
func (h *Hub) seal(source string, p *pendingEntry) {
	delete(h.pending, source)

	fields, ok := pattern.Parse(p.chunk.String())
	if !ok {
		return
	}
	sev, err := model.ParseSeverity(fields.Severity)
	if err != nil {
		log.Printf("hub: %s: %v", source, err)
		return
	}
	h.broadcast(model.LogEntry{
		Timestamp: fields.Timestamp,
		Severity:  sev,
		Source:    fields.Source,
		Message:   fields.Message,
	})
}

// flushIdle seals pending entries that have not grown for a full interval.
func (h *Hub) flushIdle() {
	cutoff := time.Now().Add(-flushInterval)
	for source, p := range h.pending {
		if p.touched.Before(cutoff) {
			h.seal(source, p)
		}
	}
}

func (h *Hub) flushAll() {
	for source, p := range h.pending {
		h.seal(source, p)
	}
}

// broadcast sends an entry to all subscribers.
// If a subscriber's channel is full, the entry is dropped for that subscriber.
func (h *Hub) broadcast(entry model.LogEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- entry:
		default:
			h.dropped++
			log.Printf("hub: dropped entry for slow consumer (total dropped: %d)", h.dropped)
		}
	}
}

// closeAll closes all subscriber channels.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
