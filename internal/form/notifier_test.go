//go:build !integration

package form

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	q := NewQueue(2)

	assert.Equal(t, []Notification{}, q.Drain())

	q.Notify(KindSuccess, "one")
	q.Notify(KindError, "two")
	q.Notify(KindSuccess, "three")

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []Notification{
		{Kind: KindError, Message: "two"},
		{Kind: KindSuccess, Message: "three"},
	}, q.Drain(), "oldest is dropped when full")
	assert.Equal(t, 0, q.Len())
}

func TestNewQueue_DefaultSize(t *testing.T) {
	q := NewQueue(0)
	for i := 0; i < DefaultQueueSize+3; i++ {
		q.Notify(KindSuccess, "x")
	}
	assert.Equal(t, DefaultQueueSize, q.Len())
}

func TestLoggingNotifier(t *testing.T) {
	var buf bytes.Buffer
	var got []Notification
	n := LoggingNotifier{
		Next: NotifierFunc(func(kind Kind, message string) {
			got = append(got, Notification{Kind: kind, Message: message})
		}),
		Logger: zerolog.New(&buf),
	}

	n.Notify(KindError, "Invalid warehouse")

	assert.Equal(t, []Notification{{Kind: KindError, Message: "Invalid warehouse"}}, got)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"notification":"Invalid warehouse"`)
}

func TestLoggingNotifier_NilNext(t *testing.T) {
	var buf bytes.Buffer
	n := LoggingNotifier{Logger: zerolog.New(&buf)}

	assert.NotPanics(t, func() { n.Notify(KindSuccess, "done") })
	assert.Contains(t, buf.String(), `"level":"info"`)
}
