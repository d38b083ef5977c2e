package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pirizgpt/cli/internal/debug"
)

// StreamEventKind discriminates the three frame shapes the backend
// emits on the streaming endpoint.
type StreamEventKind int

// Stream event kinds.
const (
	StreamText StreamEventKind = iota
	StreamDone
	StreamError
)

// StreamEvent is one decoded frame of a streaming reply.
type StreamEvent struct {
	Kind StreamEventKind
	Text string // delta for StreamText
	Err  string // message for StreamError
}

// StreamCallbacks receive decoded events as a reply streams in.
// OnComplete receives the full accumulated text, in arrival order.
type StreamCallbacks struct {
	OnTextDelta func(delta string)
	OnComplete  func(full string)
	OnError     func(message string)
}

// framePrefix marks the lines of the response body that carry a frame.
const framePrefix = "data: "

// maxFrameSize bounds a single frame line. Replies are short-lived and
// bounded, so 1 MiB is generous.
const maxFrameSize = 1 << 20

// frame is the duck-typed wire shape; exactly one field is populated
// per frame.
type frame struct {
	Text  *string `json:"text"`
	Done  bool    `json:"done"`
	Error *string `json:"error"`
}

// decodeFrame parses one line of the response body. It returns false
// for lines that are not frames, fail to parse, or match none of the
// three known shapes; such lines are dropped and the stream continues.
func decodeFrame(line string) (StreamEvent, bool) {
	line = strings.TrimSuffix(line, "\r")
	rest, ok := strings.CutPrefix(line, framePrefix)
	if !ok {
		return StreamEvent{}, false
	}

	var f frame
	if err := json.Unmarshal([]byte(rest), &f); err != nil {
		return StreamEvent{}, false
	}

	// Discriminant check order: error, done, text.
	switch {
	case f.Error != nil:
		return StreamEvent{Kind: StreamError, Err: *f.Error}, true
	case f.Done:
		return StreamEvent{Kind: StreamDone}, true
	case f.Text != nil:
		return StreamEvent{Kind: StreamText, Text: *f.Text}, true
	}
	return StreamEvent{}, false
}

// Stream sends one message to the streaming chat endpoint and consumes
// the reply until a terminal frame, the end of the connection, or
// context cancellation. Frames are reassembled on line boundaries, so
// a frame split across two reads is never lost.
//
// Callbacks fire in arrival order on the calling goroutine. Exactly one
// of OnComplete or OnError fires unless the context is cancelled, in
// which case neither does and the returned error wraps context.Canceled.
func (c *Client) Stream(ctx context.Context, message, sessionID string, cb StreamCallbacks) error {
	debug.Event("stream", "state", "sending")

	body, err := json.Marshal(map[string]string{
		"message":    message,
		"session_id": sessionID,
	})
	if err != nil {
		return fmt.Errorf("encoding stream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/stream", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building stream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			debug.Event("stream", "state", "cancelled")
			return fmt.Errorf("stream cancelled: %w", ctx.Err())
		}
		if cb.OnError != nil {
			cb.OnError(err.Error())
		}
		return fmt.Errorf("opening stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		msg := fmt.Sprintf("server returned %s", resp.Status)
		if cb.OnError != nil {
			cb.OnError(msg)
		}
		return fmt.Errorf("opening stream: %s", msg)
	}

	debug.Event("stream", "state", "streaming")

	var accumulated strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

	for scanner.Scan() {
		event, ok := decodeFrame(scanner.Text())
		if !ok {
			continue
		}

		switch event.Kind {
		case StreamText:
			accumulated.WriteString(event.Text)
			if cb.OnTextDelta != nil {
				cb.OnTextDelta(event.Text)
			}

		case StreamDone:
			debug.Event("stream", "state", "completed")
			if cb.OnComplete != nil {
				cb.OnComplete(accumulated.String())
			}
			return nil

		case StreamError:
			debug.Event("stream", "state", fmt.Sprintf("failed: %s", event.Err))
			if cb.OnError != nil {
				cb.OnError(event.Err)
			}
			return fmt.Errorf("stream failed: %s", event.Err)
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			debug.Event("stream", "state", "cancelled")
			return fmt.Errorf("stream cancelled: %w", context.Canceled)
		}
		debug.Event("stream", "state", "failed: read error")
		if cb.OnError != nil {
			cb.OnError(err.Error())
		}
		return fmt.Errorf("reading stream: %w", err)
	}

	// Connection ended cleanly without a done frame. The reply is all
	// we will get, so treat it as complete.
	debug.Event("stream", "state", "completed (eof)")
	if cb.OnComplete != nil {
		cb.OnComplete(accumulated.String())
	}
	return nil
}
