package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Verification message types understood by the Dispatcher.
const (
	TypeRegister = "register"
	TypeReset    = "reset"
)

// Message asks the mailer to deliver a verification code.
type Message struct {
	Type  string `json:"type"`
	Email string `json:"email"`
	Code  string `json:"code"`
	// ValidFor is the code lifetime shown in the mail. Zero falls back to the
	// Dispatcher's configured validity.
	ValidFor time.Duration `json:"valid_for,omitempty"`
}

// Publisher hands a message to the delivery channel. Implementations must not
// wait for delivery; a returned error only means the hand-off failed.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Handler consumes one message.
type Handler interface {
	Handle(ctx context.Context, msg Message) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg Message) error { return f(ctx, msg) }

func encode(msg Message) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode mail message: %w", err)
	}
	return b, nil
}

func decode(b []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(b, &msg); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return msg, nil
}
