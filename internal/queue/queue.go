package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// TopicAssignments carries "build assignments for campaign X" jobs.
const TopicAssignments = "campaign_assignments"

// AssignmentJob is the unit of work enqueued after campaign creation. The
// JobID is a uuid so redeliveries can be traced; processing is idempotent
// on the campaign status, so at-least-once delivery is safe.
type AssignmentJob struct {
	JobID      string `json:"job_id"`
	CampaignID int    `json:"campaign_id"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with bounded retry, used when the
// server runs without RabbitMQ. Jobs are handed to subscribers on their own
// goroutine (fire-and-forget from the publisher's point of view).
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// jobEnvelope wraps a payload with retry bookkeeping
type jobEnvelope struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := jobEnvelope{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob retries with backoff until the handler succeeds or retries run out
func (q *InMemoryQueue) processJob(handler func(payload any) error, job jobEnvelope) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // no requeue
		}

		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartAssignmentSubscriber wires the assignment builder to the in-memory
// queue so a single server binary still processes campaign jobs.
func StartAssignmentSubscriber(q Queue, build func(campaignID int) error) {
	err := q.Subscribe(TopicAssignments, func(payload any) error {
		job, ok := payload.(AssignmentJob)
		if !ok {
			log.Println("⚠️ Invalid payload type, expected AssignmentJob")
			return nil // malformed, no retry
		}

		log.Println("📩 Building assignments for campaign:", job.CampaignID, "job:", job.JobID)
		if err := build(job.CampaignID); err != nil {
			log.Println("⚠️ Assignment batch failed:", err)
			return err // triggers retry in queue
		}
		return nil
	})
	if err != nil {
		log.Println("⚠️ Failed to start subscriber for", TopicAssignments, ":", err)
	}
}
