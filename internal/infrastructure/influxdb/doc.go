// Package influxdb stores invocation history in InfluxDB.
//
// The integration is optional and enabled through config. When active,
// every handled skill request is recorded as a time-series point (intent,
// outcome, handling duration) so usage can be graphed and slow calls to
// the remote device API can be spotted.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    // history is best effort, run without it
//	}
//	defer client.Close()
//
//	client.WriteInvocation("ToggleSwitch", "fulfilled", elapsed)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes; async
// failures are surfaced through the SetOnError callback.
package influxdb
