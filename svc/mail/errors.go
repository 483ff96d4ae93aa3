package mail

import "errors"

var (
	ErrQueueFull        = errors.New("mail: queue is full")
	ErrPublisherClosed  = errors.New("mail: publisher is closed")
	ErrMalformedMessage = errors.New("mail: malformed message")
	ErrMissingBrokers   = errors.New("mail: kafka requires at least one broker")
	ErrMissingTopic     = errors.New("mail: kafka topic is required")
	ErrMissingGroupID   = errors.New("mail: kafka consumer group id is required")
)
