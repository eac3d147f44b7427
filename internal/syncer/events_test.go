package syncer

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventReader(t *testing.T) {
	stream := strings.Join([]string{
		": keep-alive",
		"",
		"event: samples_updated",
		"data: {}",
		"",
		"event:info\r",
		"data: line one\r",
		"data: line two\r",
		"\r",
		"data: anonymous",
		"",
		"event:users_updated",
		"",
		"",
	}, "\n")
	reader := newEventReader(strings.NewReader(stream))

	evt, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, event{Name: "samples_updated", Data: "{}"}, evt)

	evt, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, event{Name: "info", Data: "line one\nline two"}, evt)

	evt, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, event{Name: "message", Data: "anonymous"}, evt)

	evt, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, event{Name: "users_updated"}, evt, "an event without data is still delivered")

	_, err = reader.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestEventReader_EmptyStream(t *testing.T) {
	_, err := newEventReader(strings.NewReader("")).Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestEventReader_CommentsOnly(t *testing.T) {
	_, err := newEventReader(strings.NewReader(": ping\n\n: ping\n\n")).Next()
	assert.ErrorIs(t, err, io.EOF)
}
