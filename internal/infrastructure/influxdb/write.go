package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteInvocation records a completed skill invocation.
//
// This is the primary method for the invocation history. The write is
// non-blocking; points are batched and sent asynchronously.
//
// Parameters:
//   - intent: The intent name (e.g., "ToggleSwitch", "CreateGroup")
//   - outcome: "fulfilled" or "failed"
//   - duration: Wall-clock time spent handling the request
//
// Example:
//
//	client.WriteInvocation("ToggleSwitch", "fulfilled", 220*time.Millisecond)
func (c *Client) WriteInvocation(intent string, outcome string, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"invocations",
		map[string]string{
			"intent":  intent,
			"outcome": outcome,
		},
		map[string]interface{}{
			"duration_ms": float64(duration.Milliseconds()),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
