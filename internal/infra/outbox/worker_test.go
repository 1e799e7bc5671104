package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	queue  []*EventDocument
	sent   []string
	failed map[string]time.Time
	dead   []string
}

func (s *fakeStore) Claim(ctx context.Context, workerID string) (*EventDocument, error) {
	if len(s.queue) == 0 {
		return nil, nil
	}
	doc := s.queue[0]
	s.queue = s.queue[1:]
	return doc, nil
}

func (s *fakeStore) MarkSent(ctx context.Context, id string) error {
	s.sent = append(s.sent, id)
	return nil
}

func (s *fakeStore) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	if s.failed == nil {
		s.failed = map[string]time.Time{}
	}
	s.failed[id] = next
	return nil
}

func (s *fakeStore) MarkDead(ctx context.Context, id string, errMsg string) error {
	s.dead = append(s.dead, id)
	return nil
}

type published struct {
	topic   string
	key     string
	payload []byte
	headers map[string]string
}

type fakeProducer struct {
	err  error
	sent []published
}

func (p *fakeProducer) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{topic: topic, key: key, payload: payload, headers: headers})
	return nil
}

var at = time.Date(2025, time.August, 17, 10, 0, 0, 0, time.UTC)

func doc(id, name string, attempts int) *EventDocument {
	return &EventDocument{
		ID:         id,
		Name:       name,
		Payload:    []byte(`{"booking_id":"bk-1","total":5000000}`),
		OccurredAt: at,
		Aggregate:  "bk-1",
		Headers:    map[string]string{"x-request-id": "req-1"},
		Attempts:   attempts,
	}
}

func TestDrainPublishesCloudEvents(t *testing.T) {
	store := &fakeStore{queue: []*EventDocument{doc("ev-1", "booking.submitted", 0), doc("ev-2", "payment.instructed", 0)}}
	producer := &fakeProducer{}
	w := &Worker{Store: store, Producer: producer, TopicPrefix: "dev."}

	n, err := w.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"ev-1", "ev-2"}, store.sent)

	require.Len(t, producer.sent, 2)
	first := producer.sent[0]
	assert.Equal(t, "dev.booking.events.v1", first.topic)
	assert.Equal(t, "dev.payment.events.v1", producer.sent[1].topic)
	assert.Equal(t, "bk-1", first.key)
	assert.Equal(t, "application/cloudevents+json", first.headers["content-type"])
	assert.Equal(t, "req-1", first.headers["x-request-id"])

	var evt map[string]any
	require.NoError(t, json.Unmarshal(first.payload, &evt))
	assert.Equal(t, "booking.submitted.v1", evt["type"])
	assert.Equal(t, "ev-1", evt["id"])
	assert.Equal(t, "app://rukorent", evt["source"])
	assert.Equal(t, "req-1", evt["correlationid"])
	assert.Equal(t, "bk-1", evt["data"].(map[string]any)["booking_id"])
}

func TestDrainSchedulesRetryWithBackoff(t *testing.T) {
	store := &fakeStore{queue: []*EventDocument{doc("ev-1", "booking.submitted", 1)}}
	w := &Worker{
		Store:    store,
		Producer: &fakeProducer{err: errors.New("broker down")},
		Backoff:  []time.Duration{time.Second, 5 * time.Second, 30 * time.Second},
		Now:      func() time.Time { return at },
	}
	_, err := w.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, at.Add(5*time.Second), store.failed["ev-1"])
	assert.Empty(t, store.sent)
}

func TestDrainParksExhaustedAndInvalidRecords(t *testing.T) {
	bad := doc("ev-bad", "booking.submitted", 0)
	bad.Payload = []byte("not json")
	store := &fakeStore{queue: []*EventDocument{doc("ev-1", "booking.submitted", 4), bad}}
	w := &Worker{Store: store, Producer: &fakeProducer{err: errors.New("broker down")}, MaxAttempts: 5}

	_, err := w.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-1", "ev-bad"}, store.dead)
}

func TestDrainRespectsBatchSize(t *testing.T) {
	store := &fakeStore{queue: []*EventDocument{doc("a", "booking.submitted", 0), doc("b", "booking.submitted", 0), doc("c", "booking.submitted", 0)}}
	w := &Worker{Store: store, Producer: &fakeProducer{}, BatchSize: 2}
	n, err := w.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, store.queue, 1)
}

func TestRunRequiresDependencies(t *testing.T) {
	assert.ErrorIs(t, (&Worker{}).Run(context.Background()), ErrWorkerNotConfigured)
}
