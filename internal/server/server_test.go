package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := New(handler, Options{ShutdownTimeout: 5 * time.Second}, logger)

	var mu sync.Mutex
	var order []string
	record := func(name string) ShutdownFunc {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}
	srv.OnShutdown("database", record("database"))
	srv.OnShutdown("redis", record("redis"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	if want := []string{"redis", "database"}; !reflect.DeepEqual(order, want) {
		t.Errorf("shutdown order = %v, want %v", order, want)
	}
}

func TestServer_ShutdownErrorsAreJoined(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(http.NotFoundHandler(), Options{ShutdownTimeout: time.Second}, logger)

	errA := errors.New("a failed")
	errB := errors.New("b failed")
	srv.OnShutdown("a", func(context.Context) error { return errA })
	srv.OnShutdown("b", func(context.Context) error { return errB })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = srv.Serve(ctx, ln)
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both shutdown errors, got %v", err)
	}
}
