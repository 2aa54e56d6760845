// Package mail delivers generated plans to clients as email attachments.
package mail

import "context"

// Attachment is a single binary attached to an outgoing message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a fully composed transactional email.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}

// Sender hands a composed message to a mail transport. Implementations are
// injected; tests substitute an in-memory fake. Sending is at-most-once per
// call — no retries happen below this interface.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
