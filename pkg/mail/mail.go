// Package mail sends account emails through a background queue.
package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/pkg/jobs"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a message synchronously.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the logger instead of an SMTP relay.
type LogSender struct {
	from   string
	logger *zap.Logger
}

// NewLogSender builds a sender that logs every message.
func NewLogSender(from string, logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{from: from, logger: logger}
}

// Send implements Sender.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mail: empty recipient")
	}
	s.logger.Info("mail sent",
		zap.String("from", s.from),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

// Dispatcher hands messages to a worker queue so request handlers never block on delivery.
type Dispatcher struct {
	queue *jobs.Queue[Message]
}

// NewDispatcher wires sender behind a retrying queue.
func NewDispatcher(sender Sender, cfg jobs.QueueConfig) *Dispatcher {
	queue := jobs.NewQueue[Message]("mail", func(ctx context.Context, job jobs.Job[Message]) error {
		return sender.Send(ctx, job.Payload)
	}, cfg)
	return &Dispatcher{queue: queue}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start(ctx context.Context) { d.queue.Start(ctx) }

// Stop stops the delivery workers.
func (d *Dispatcher) Stop() { d.queue.Stop() }

// Send enqueues msg for delivery.
func (d *Dispatcher) Send(_ context.Context, msg Message) error {
	_, err := d.queue.Submit("mail", msg)
	return err
}

// VerificationMessage is sent after signup and on resend requests.
func VerificationMessage(to, name, link string) Message {
	return Message{
		To:      to,
		Subject: "Verify your email",
		Body:    fmt.Sprintf("Hello %s,\n\nConfirm your account by opening the link below:\n%s\n", name, link),
	}
}

// PasswordResetMessage carries the reset link.
func PasswordResetMessage(to, name, link string) Message {
	return Message{
		To:      to,
		Subject: "Reset your password",
		Body:    fmt.Sprintf("Hello %s,\n\nReset your password using the link below. It expires soon.\n%s\n", name, link),
	}
}
