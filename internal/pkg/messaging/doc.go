// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// Use-case code depends on Publisher and Consumer only. The driver is picked
// at startup: the in-process "direct" driver delivers synchronously in the
// publisher's goroutine, while the NATS, Kafka and Google Pub/Sub drivers go
// through a real broker.
package messaging
