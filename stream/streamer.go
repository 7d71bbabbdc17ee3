package stream

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

const (
	publishInterval = 33 * time.Millisecond
	publishTimeout  = 10 * time.Millisecond
)

var errPublishTimeout = errors.New("publish timed out")

// An Animation renders frames on demand for a given runtime.
type Animation interface {
	CalculateFrame(runtimeMs int64) *Frame
}

// Streamer that streams RGB data frames to an LED matrix over MQTT.
type Streamer struct {
	client mqtt.Client
	topic  string
	width  int
	height int
	timer  Timer
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client, now time.Time) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = config.Mqtt.Topics.Stream
	s.width = config.Mqtt.Matrix.Width
	s.height = config.Mqtt.Matrix.Height
	s.timer = NewTimer(now)
	return s
}

// SendFrame scales f down to the matrix and publishes it as binary over MQTT.
func (s *Streamer) SendFrame(f *Frame) error {
	b, err := f.Downsample(s.width, s.height).MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, 0, false, b)
	if !token.WaitTimeout(publishTimeout) {
		return errPublishTimeout
	}
	return token.Error()
}

// Observe publishes rendered frames at no more than the matrix frame rate.
func (s *Streamer) Observe(f *Frame, now time.Time) {
	if !s.timer.Fired(now, publishInterval) {
		return
	}
	if err := s.SendFrame(f); err != nil {
		log.Printf("stream: %v", err)
	}
}

// Run renders and sends frames from a until ctx is done.
func (s *Streamer) Run(ctx context.Context, a Animation) {
	start := time.Now()
	publishTimer := time.NewTicker(publishInterval)
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-publishTimer.C:
			f := a.CalculateFrame(now.Sub(start).Milliseconds())
			if err := s.SendFrame(f); err != nil {
				log.Printf("stream: %v", err)
			}
		}
	}
}
