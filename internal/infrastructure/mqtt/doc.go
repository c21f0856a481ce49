// Package mqtt publishes gateway events to an MQTT broker.
//
// The broker integration is optional and enabled through config. When
// active, the gateway announces completed switch commands and group
// registry changes so that dashboards and automations elsewhere on the
// network can react to voice activity. Nothing in-process subscribes;
// the client is publish-only with a retained status topic and a Last
// Will for offline detection.
package mqtt
