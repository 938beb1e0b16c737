package services

// EventPublisher is the slice of the message bus client the services need.
// Routing keys follow "<service>.<event>" on the shop.events exchange.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}
