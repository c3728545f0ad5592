// Package queue defines message payloads exchanged over the message broker.
package queue

// Notification kinds published to the email.notifications queue.
const (
	KindSignatureRequest = "signature_request"
	KindPasswordReset    = "password_reset"
)

// EmailNotificationEvent is published whenever the service needs an
// email delivered: a supervisor verification link after a sign-off
// request, or a password reset link. It carries everything the mailer
// needs so consumers never query the primary database.
type EmailNotificationEvent struct {
	Kind        string `json:"kind"`         // one of the Kind* constants
	To          string `json:"to"`           // recipient email address
	Subject     string `json:"subject"`      // rendered subject line
	Body        string `json:"body"`         // rendered plain-text body
	Link        string `json:"link"`         // verification or reset URL
	RequestedAt string `json:"requested_at"` // RFC3339 UTC timestamp
}
