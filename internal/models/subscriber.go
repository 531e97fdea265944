package models

type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

// Subscriber is a newsletter signup.
type Subscriber struct {
	Meta
	Email  string           `json:"email"`
	Name   string           `json:"name,omitempty"`
	Status SubscriberStatus `json:"status"`
}
