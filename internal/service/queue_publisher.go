// Package queue_publisher publishes domain events to RabbitMQ.
// Errors are logged and returned so callers can ignore broker
// failures without interrupting the main request flow.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/showgrid/showgrid/internal/queue"
)

// PublishShowPublished emits a ShowPublishedEvent to the
// show.published queue.
func PublishShowPublished(ctx context.Context, event q.ShowPublishedEvent) error {
    return publish(ctx, q.ShowPublishedQueue, event)
}

// PublishBookingConfirmed emits a BookingConfirmedEvent to the
// booking.confirmed queue.
func PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error {
    return publish(ctx, q.BookingConfirmedQueue, event)
}

// publish dials the broker, declares the durable queue (idempotent)
// and sends the event as a persistent JSON message on the default
// exchange.  It never panics; every failure path logs and returns.
func publish(ctx context.Context, queueName string, event any) error {
    conn, err := amqp.Dial(q.BrokerURL())
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(
        queueName, // name
        true,      // durable
        false,     // autoDelete
        false,     // exclusive
        false,     // noWait
        nil,       // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",        // default exchange
        queueName, // routing key = queue name
        false,     // mandatory
        false,     // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }

    return nil
}
