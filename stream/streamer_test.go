package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

type fakeToken struct {
	mqtt.Token
	err     error
	timeout bool
}

func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.timeout }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	payload []byte
}

type fakeClient struct {
	mqtt.Client
	sent  []published
	token *fakeToken
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic, payload.([]byte)})
	if c.token == nil {
		return &fakeToken{}
	}
	return c.token
}

func streamerConfig() Config {
	c := DefaultConfig()
	c.Mqtt.URL = "tcp://localhost:1883"
	c.Mqtt.Topics.Stream = "test/stream"
	c.Mqtt.Matrix.Width = 8
	c.Mqtt.Matrix.Height = 4
	return c
}

func TestStreamerSendsDownsampledFrame(t *testing.T) {
	client := &fakeClient{}
	s := NewStreamer(streamerConfig(), client, time.Now())

	if err := s.SendFrame(NewFrame(64, 32, true)); err != nil {
		t.Fatal(err)
	}
	if len(client.sent) != 1 {
		t.Fatalf("sent %d messages", len(client.sent))
	}
	msg := client.sent[0]
	if msg.topic != "test/stream" {
		t.Errorf("topic = %q", msg.topic)
	}
	if w, h := binary.LittleEndian.Uint16(msg.payload), binary.LittleEndian.Uint16(msg.payload[2:]); w != 8 || h != 4 {
		t.Errorf("payload size = %dx%d, want 8x4", w, h)
	}
	if len(msg.payload) != 4+8*4*3 {
		t.Errorf("payload length = %d", len(msg.payload))
	}
}

func TestStreamerReportsFailures(t *testing.T) {
	boom := errors.New("boom")
	client := &fakeClient{token: &fakeToken{err: boom}}
	s := NewStreamer(streamerConfig(), client, time.Now())
	if err := s.SendFrame(NewFrame(8, 4, true)); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}

	client.token = &fakeToken{timeout: true}
	if err := s.SendFrame(NewFrame(8, 4, true)); !errors.Is(err, errPublishTimeout) {
		t.Errorf("err = %v, want timeout", err)
	}
}

func TestStreamerObserveIsRateLimited(t *testing.T) {
	clock := newMockClock()
	client := &fakeClient{}
	s := NewStreamer(streamerConfig(), client, clock.Now())
	f := NewFrame(16, 16, true)

	for i := 0; i < 60; i++ {
		s.Observe(f, clock.Advance(time.Second/60))
	}
	// 33ms publish interval: every other 16.7ms frame.
	if n := len(client.sent); n < 28 || n > 31 {
		t.Errorf("published %d frames in one second, want about 30", n)
	}
}

type countingAnimation struct {
	calls int
	frame *Frame
}

func (a *countingAnimation) CalculateFrame(runtimeMs int64) *Frame {
	a.calls++
	return a.frame
}

func TestStreamerRunStopsWithContext(t *testing.T) {
	client := &fakeClient{}
	s := NewStreamer(streamerConfig(), client, time.Now())
	a := &countingAnimation{frame: NewFrame(16, 16, true)}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	s.Run(ctx, a)

	if a.calls == 0 || len(client.sent) != a.calls {
		t.Errorf("rendered %d frames, sent %d", a.calls, len(client.sent))
	}
}
