// Package mail carries verification-code messages from the code issuer to
// the mail sender.
//
// Two transports implement Publisher: ChannelPublisher delivers in-process
// through a worker pool, KafkaPublisher writes to a topic that a separate
// `authgate mailer` process consumes with KafkaConsumer. Both end in a
// Dispatcher, which renders the register or reset template and hands it to
// an email.EmailSender. Messages of any other type are dropped.
package mail
