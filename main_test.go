package main

import (
	"bytes"
	"log"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matt-g-everett/afterimage/api"
	"github.com/matt-g-everett/afterimage/stream"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

func TestCloseLogsApiShutdownError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	saved := shutdownTimeout
	shutdownTimeout = 50 * time.Millisecond
	defer func() { shutdownTimeout = saved }()

	addr := freeAddr(t)
	a := newApp(stream.DefaultConfig())
	a.Api = api.NewApi(addr)
	go a.Api.Serve()

	// A connection that never sends a request keeps the server busy past the
	// shutdown deadline.
	var conn net.Conn
	var err error
	for i := 0; i < 50; i++ {
		if conn, err = net.Dial("tcp", addr); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial api: %v", err)
	}
	defer conn.Close()
	// Let the server accept it.
	time.Sleep(50 * time.Millisecond)

	a.close()
	if !strings.Contains(buf.String(), "api: shutdown") {
		t.Errorf("log = %q, want the shutdown error", buf.String())
	}
}
