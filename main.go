package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/afterimage/api"
	"github.com/matt-g-everett/afterimage/stream"
	"github.com/matt-g-everett/afterimage/trail"
	"github.com/matt-g-everett/afterimage/window"
	"gopkg.in/natefinch/lumberjack.v2"
)

const backendHeadless = "headless"

var shutdownTimeout = time.Second

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Streamer *stream.Streamer
	Api      *api.Api
	Scene    *stream.Scene
	Chime    *stream.Chime
}

func newApp(config stream.Config) *app {
	a := new(app)
	a.Config = config
	return a
}

func (a *app) setupLogging() {
	var w io.Writer = os.Stderr
	if a.Config.Log.File != "" {
		w = &lumberjack.Logger{
			Filename:   a.Config.Log.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	}
	log.SetOutput(w)
	mqtt.ERROR = log.New(w, "mqtt: ", 0)
}

func (a *app) connect() error {
	if a.Config.Mqtt.URL == "" {
		return nil
	}
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("afterimage").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) { log.Println("Connected") })
	a.Client = mqtt.NewClient(options)
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect %s: %w", a.Config.Mqtt.URL, token.Error())
	}
	a.Streamer = stream.NewStreamer(a.Config, a.Client, time.Now())
	return nil
}

func (a *app) build() error {
	face, err := stream.LoadFont(a.Config.Font.Path, a.Config.Font.Size)
	if err != nil {
		return err
	}

	seed := a.Config.Trail.Seed
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	a.Scene = stream.NewScene(a.Config, face, rand.New(rand.NewSource(seed)), time.Now())

	if a.Config.Audio.Enabled {
		chime, err := stream.NewChime(a.Config.Audio.Pitch)
		if err != nil {
			// Non-fatal, the demo runs without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			a.Chime = chime
			a.Scene.OnInsert(func(trail.Shape) { chime.Play() })
		}
	}

	if a.Config.Api.Addr != "" {
		a.Api = api.NewApi(a.Config.Api.Addr)
		a.Scene.AddObserver(a.Api)
		go a.Api.Serve()
	}
	return nil
}

func (a *app) run() error {
	backend := a.Config.Window.Backend
	if backend == backendHeadless {
		if a.Streamer == nil {
			return fmt.Errorf("headless mode needs an mqtt url")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		a.Streamer.Run(ctx, a.Scene)
		return nil
	}

	if a.Streamer != nil {
		a.Scene.AddObserver(a.Streamer)
	}
	w, err := window.New(backend, window.Options{
		Width:     a.Config.Window.Width,
		Height:    a.Config.Window.Height,
		Title:     a.Config.Window.Title,
		FrameRate: a.Config.Window.FrameRate,
	})
	if err != nil {
		return err
	}
	return w.Run(a.Scene)
}

func (a *app) close() {
	if a.Api != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Api.Shutdown(ctx); err != nil {
			log.Printf("api: shutdown: %v", err)
		}
	}
	if a.Chime != nil {
		a.Chime.Close()
	}
	if a.Client != nil {
		a.Client.Disconnect(250)
	}
}

func main() {
	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	backend := flag.String("backend", "", "Window backend: desktop, terminal or headless.")
	flag.Parse()

	config, err := stream.ReadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
		os.Exit(1)
	}
	if *backend != "" {
		config.Window.Backend = *backend
	}

	a := newApp(config)
	a.setupLogging()
	log.Printf("Starting %s backend, trail capacity %d", a.Config.Window.Backend, a.Config.Trail.Capacity)

	if err := a.build(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	if err := a.connect(); err != nil {
		log.Printf("Streaming disabled: %v", err)
	}

	err = a.run()
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
