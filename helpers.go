package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/muhammadolammi/skilledge/internal/database"
	"github.com/muhammadolammi/skilledge/internal/extract"
	"github.com/streadway/amqp"
)

var retryBackoff = 500 * time.Millisecond

// retry retries a function up to `attempts` times with linear backoff
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < attempts-1 {
			time.Sleep(retryBackoff * time.Duration(i+1))
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// resumeFilename returns a name whose extension the extractor understands,
// falling back to the stored MIME type when the original name has none.
func resumeFilename(r database.Resume) string {
	name := r.OriginalFilename
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx":
		return name
	}
	if ext := extract.FromMIME(r.Mime); ext != "" {
		return name + ext
	}
	return name
}

type amqpPublisher struct {
	conn *amqp.Connection
}

func declareUpdatesExchange(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.ExchangeDeclare(
		updatesExchange, // name
		"topic",         // kind
		true,            // durable
		false,           // auto-delete
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
}

func (p *amqpPublisher) Publish(_ context.Context, update StatusUpdate) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return err
	}

	return ch.Publish(
		updatesExchange,
		routingKey(update),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func routingKey(update StatusUpdate) string {
	return fmt.Sprintf("analysis.%s", update.AnalysisID)
}
