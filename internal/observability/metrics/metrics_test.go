package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	kind  string
	name  string
	value any
	tags  map[string]string
}

type recordingSink struct {
	mu   sync.Mutex
	seen []recorded
}

func (r *recordingSink) Count(name string, value int64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, recorded{kind: "count", name: name, value: value, tags: tags})
}

func (r *recordingSink) Timing(name string, value time.Duration, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, recorded{kind: "timing", name: name, value: value, tags: tags})
}

func TestEmitLoginAttempt(t *testing.T) {
	sink := &recordingSink{}
	EmitLoginAttempt(sink, OutcomeRejected, 2*time.Millisecond)

	require.Len(t, sink.seen, 2)
	assert.Equal(t, "login.attempt", sink.seen[0].name)
	assert.Equal(t, int64(1), sink.seen[0].value)
	assert.Equal(t, map[string]string{"outcome": "rejected"}, sink.seen[0].tags)
	assert.Equal(t, "login.duration", sink.seen[1].name)

	sink = &recordingSink{}
	EmitLoginAttempt(sink, OutcomeAccepted, 0)
	require.Len(t, sink.seen, 1)
}

func TestEmitSessionStarted(t *testing.T) {
	sink := &recordingSink{}
	EmitSessionStarted(sink, "memory")
	require.Len(t, sink.seen, 1)
	assert.Equal(t, "session.started", sink.seen[0].name)
	assert.Equal(t, "memory", sink.seen[0].tags["store"])
}

func TestEmitSessionStoreError(t *testing.T) {
	sink := &recordingSink{}
	EmitSessionStoreError(sink, "get", nil)
	assert.Empty(t, sink.seen)

	EmitSessionStoreError(sink, "get", errors.New("boom"))
	require.Len(t, sink.seen, 1)
	assert.Equal(t, "get", sink.seen[0].tags["op"])
	assert.Equal(t, "errors_errorstring", sink.seen[0].tags["error_class"])
}

func TestEmitHTTPRequest(t *testing.T) {
	sink := &recordingSink{}
	EmitHTTPRequest(sink, "", 404, time.Millisecond)
	require.Len(t, sink.seen, 2)
	assert.Equal(t, "unmatched", sink.seen[0].tags["route"])
	assert.Equal(t, "404", sink.seen[0].tags["status"])
	assert.Equal(t, "timing", sink.seen[1].kind)
}

func TestNilSinkIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitLoginAttempt(nil, OutcomeAccepted, time.Second)
		EmitSessionStarted(nil, "memory")
		EmitSessionStoreError(nil, "save", errors.New("x"))
		EmitHTTPRequest(nil, "GET /login", 200, time.Second)
	})
}

func TestCloneTags(t *testing.T) {
	assert.Nil(t, CloneTags(nil))
	src := map[string]string{"a": "1"}
	cp := CloneTags(src)
	cp["a"] = "2"
	assert.Equal(t, "1", src["a"])
}
