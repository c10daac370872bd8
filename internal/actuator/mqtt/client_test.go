// internal/actuator/mqtt/client_test.go
package mqtt

import (
	"context"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ---- fake token / publisher ----

type fakeToken struct {
	done chan struct{}
	err  error
}

func doneToken(err error) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool                       { <-t.done; return true }
func (t *fakeToken) WaitTimeout(d time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}            { return t.done }
func (t *fakeToken) Error() error                     { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  interface{}
}

type fakePublisher struct {
	sent  []published
	token func() mqtt.Token
}

func (f *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	f.sent = append(f.sent, published{topic, qos, retained, payload})
	if f.token != nil {
		return f.token()
	}
	return doneToken(nil)
}

func newTestClient(pub publisher) *Client {
	return &Client{pub: pub, prefix: "haptics", timeout: 50 * time.Millisecond}
}

// ---- tests ----

func TestVibrate_PublishesIntensity(t *testing.T) {
	fake := &fakePublisher{}
	c := newTestClient(fake)

	if err := c.Vibrate(context.Background(), 3, 0.25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.sent) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(fake.sent))
	}
	got := fake.sent[0]
	if got.topic != "haptics/3/intensity" {
		t.Fatalf("topic: got=%s", got.topic)
	}
	if got.payload != "0.250" {
		t.Fatalf("payload: got=%v", got.payload)
	}
	if got.qos != 1 || !got.retained {
		t.Fatalf("delivery flags: qos=%d retained=%v", got.qos, got.retained)
	}
}

func TestVibrate_RejectsOutOfRange(t *testing.T) {
	fake := &fakePublisher{}
	c := newTestClient(fake)

	if err := c.Vibrate(context.Background(), 0, -0.5); err == nil {
		t.Fatalf("expected range error, got nil")
	}
	if len(fake.sent) != 0 {
		t.Fatalf("rejected command was published")
	}
}

func TestVibrate_BrokerError(t *testing.T) {
	fake := &fakePublisher{token: func() mqtt.Token { return doneToken(errors.New("not connected")) }}
	c := newTestClient(fake)

	if err := c.Vibrate(context.Background(), 0, 0.5); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestVibrate_Timeout(t *testing.T) {
	fake := &fakePublisher{token: func() mqtt.Token {
		return &fakeToken{done: make(chan struct{})} // never acknowledged
	}}
	c := newTestClient(fake)

	if err := c.Vibrate(context.Background(), 0, 0.5); err == nil {
		t.Fatalf("expected timeout error, got nil")
	}
}
