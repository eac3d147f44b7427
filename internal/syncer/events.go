package syncer

import (
	"bytes"
	"io"

	"github.com/r3labs/sse/v2"
)

// maxEventSize bounds a single event on the push stream.
const maxEventSize = 1 << 16

// event is one server-sent event.
type event struct {
	Name string
	Data string
}

// eventReader turns a text/event-stream body into events. Framing is done by the sse
// package; field parsing keeps events that carry only a name, which is all the tracker
// sends.
type eventReader struct {
	stream *sse.EventStreamReader
}

func newEventReader(r io.Reader) *eventReader {
	return &eventReader{stream: sse.NewEventStreamReader(r, maxEventSize)}
}

// Next blocks until an event arrives. Comment-only frames are skipped. It returns
// io.EOF when the stream ends.
func (r *eventReader) Next() (event, error) {
	for {
		frame, err := r.stream.ReadEvent()
		if err != nil {
			return event{}, err
		}
		if evt, ok := parseFrame(frame); ok {
			return evt, nil
		}
	}
}

func parseFrame(frame []byte) (event, bool) {
	var (
		evt     event
		data    [][]byte
		present bool
	)
	lines := bytes.FieldsFunc(frame, func(r rune) bool { return r == '\n' || r == '\r' })
	for _, line := range lines {
		if line[0] == ':' {
			continue
		}
		field, value, _ := bytes.Cut(line, []byte(":"))
		value = bytes.TrimPrefix(value, []byte(" "))
		present = true
		switch string(field) {
		case "event":
			evt.Name = string(value)
		case "data":
			data = append(data, value)
		}
	}
	if !present {
		return event{}, false
	}
	if evt.Name == "" {
		evt.Name = "message"
	}
	evt.Data = string(bytes.Join(data, []byte("\n")))
	return evt, true
}
