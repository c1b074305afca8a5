// Package sse formats and writes server-sent event streams. It is a thin
// layer over the host's streaming response support: handlers produce items on
// a channel and the stream writes one wire frame per item, flushing between
// frames.
package sse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Option configures a Stream.
type Option func(*Stream)

// WithEvent sets the event name emitted on every frame.
func WithEvent(event string) Option {
	return func(s *Stream) {
		s.event = strings.TrimSpace(event)
	}
}

// WithRetry advertises a client reconnection delay in milliseconds.
func WithRetry(retryMS int) Option {
	return func(s *Stream) {
		if retryMS > 0 {
			s.retry = retryMS
		}
	}
}

// Stream is a source of server-sent events. Handlers return one from a
// streaming route; the HTTP adapter then calls Serve.
type Stream struct {
	items <-chan string
	event string
	retry int
}

// New builds a stream over items. The channel must be closed by the producer
// to end the stream.
func New(items <-chan string, options ...Option) (*Stream, error) {
	if items == nil {
		return nil, fmt.Errorf("sse: items channel is required")
	}
	s := &Stream{items: items}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// FormatItem renders a single wire frame: an optional event line, one data
// line per line of the item, an optional retry line, and a blank separator.
func (s *Stream) FormatItem(item string) string {
	var b strings.Builder
	if s.event != "" {
		b.WriteString("event: ")
		b.WriteString(s.event)
		b.WriteString("\n")
	}
	for _, line := range strings.Split(item, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if s.retry > 0 {
		b.WriteString("retry: ")
		b.WriteString(strconv.Itoa(s.retry))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// WriteTo drains the stream into w, flushing after each frame when w
// supports it. It returns when the channel closes or ctx is done.
func (s *Stream) WriteTo(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case item, ok := <-s.items:
			if !ok {
				return nil
			}
			if _, err := io.WriteString(w, s.FormatItem(item)); err != nil {
				return fmt.Errorf("sse: write frame: %w", err)
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// Serve writes the stream as a text/event-stream response, ending when the
// request is canceled or the producer closes the channel.
func (s *Stream) Serve(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	err := s.WriteTo(ctx, w)
	if err != nil && ctx.Err() != nil {
		// Client went away; not a server failure.
		return nil
	}
	return err
}
