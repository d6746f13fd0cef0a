package metrics

// Package metrics names the application's StatsD metrics and their tags.

import (
	"strconv"
	"time"

	obserrors "github.com/target/pom-practice/internal/observability/errors"
	"github.com/target/pom-practice/internal/observability/statsd"
)

// Login outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// EmitLoginAttempt records one evaluated login submission.
func EmitLoginAttempt(sink statsd.Sink, outcome string, duration time.Duration) {
	if sink == nil {
		return
	}
	tags := map[string]string{"outcome": outcome}
	sink.Count("login.attempt", 1, tags)
	if duration > 0 {
		sink.Timing("login.duration", duration, CloneTags(tags))
	}
}

// EmitSessionStarted records a newly stored session.
func EmitSessionStarted(sink statsd.Sink, store string) {
	if sink == nil {
		return
	}
	sink.Count("session.started", 1, map[string]string{"store": store})
}

// EmitSessionStoreError records a failed session store operation.
func EmitSessionStoreError(sink statsd.Sink, op string, err error) {
	if sink == nil || err == nil {
		return
	}
	sink.Count("session.store_error", 1, map[string]string{
		"op":          op,
		"error_class": obserrors.Classify(err),
	})
}

// EmitHTTPRequest records one served request keyed by its route pattern.
func EmitHTTPRequest(sink statsd.Sink, route string, status int, duration time.Duration) {
	if sink == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	tags := map[string]string{
		"route":  route,
		"status": strconv.Itoa(status),
	}
	sink.Count("http.request", 1, tags)
	sink.Timing("http.duration", duration, CloneTags(tags))
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
