package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bank-accounts/config"
	"github.com/oksasatya/go-bank-accounts/internal/domain/event"
	"github.com/oksasatya/go-bank-accounts/pkg/helpers"
	"github.com/oksasatya/go-bank-accounts/pkg/mailer"
	mailtpl "github.com/oksasatya/go-bank-accounts/pkg/mailer/templates"
)

type outcome int

const (
	ack outcome = iota
	retry
	drop
)

var errDeliveriesClosed = errors.New("delivery channel closed by broker")

type worker struct {
	cfg    *config.Config
	sender mailer.Sender // nil when sending is disabled
	logger *logrus.Logger
}

// handle turns one bank account event into a notification email.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var ev event.BankAccountEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		helpers.LogWarn(w.logger, "bad message", err, nil)
		return drop
	}
	fields := helpers.AccountFields(ev.AccountID, ev.UserID, ev.Country)
	fields["event"] = ev.Type

	if ev.Email == "" {
		helpers.LogInfo(w.logger, "event without recipient skipped", fields)
		return ack
	}
	name, data, ok := mailtpl.NewBankAccountData(w.cfg, ev)
	if !ok {
		helpers.LogInfo(w.logger, "event without notification skipped", fields)
		return ack
	}

	job := mailer.EmailJob{To: ev.Email, Template: name, Data: data}
	job.EnsureRecipient()

	subject, text, html, err := mailtpl.Render(job.Template, job.Data)
	if err != nil {
		helpers.LogError(w.logger, "render failed", err, fields)
		return drop
	}
	if w.sender == nil {
		return ack
	}
	if err := w.sender.Send(ctx, job.To, subject, text, html); err != nil {
		helpers.LogWarn(w.logger, "send failed", err, fields)
		return retry
	}
	helpers.LogInfo(w.logger, "notification sent", fields)
	return ack
}

// consume handles deliveries until the channel closes, then closes the returned channel.
func (w *worker) consume(ctx context.Context, msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			switch w.handle(c, msg.Body) {
			case ack:
				_ = msg.Ack(false)
			case retry:
				_ = msg.Nack(false, true)
			default:
				_ = msg.Nack(false, false)
			}
			cancel()
		}
	}()
	return done
}

// waitForExit returns nil on a shutdown signal and an error when consumption ended on its own.
func waitForExit(stop <-chan os.Signal, done <-chan struct{}) error {
	select {
	case <-stop:
		return nil
	case <-done:
		return errDeliveriesClosed
	}
}
