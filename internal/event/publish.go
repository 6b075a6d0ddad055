package event

import (
	"github.com/leandro-lugaresi/hub"
)

// Hub is the event bus type.
type Hub = hub.Hub

// Data holds the fields of an event.
type Data = hub.Fields

// Message is a published event.
type Message = hub.Message

// Subscription receives the messages of matching topics.
type Subscription = hub.Subscription

var channelCap = 100
var sharedHub = NewHub()

// NewHub returns a new event bus.
func NewHub() *Hub {
	return hub.New()
}

// SharedHub returns the process wide event bus.
func SharedHub() *Hub {
	return sharedHub
}

// Publish sends an event to all subscribers of a matching topic.
func Publish(event string, data Data) {
	SharedHub().Publish(Message{
		Name:   event,
		Fields: data,
	})
}

// Subscribe returns a subscription for the given topics, e.g. "quality.*".
// Messages are dropped while the receiver buffer is full, so slow
// subscribers never stall an evaluation.
func Subscribe(topics ...string) Subscription {
	return SharedHub().NonBlockingSubscribe(channelCap, topics...)
}

// Unsubscribe closes a subscription.
func Unsubscribe(s Subscription) {
	SharedHub().Unsubscribe(s)
}
