package capture

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{Store: seededStore()}); err == nil {
		t.Fatal("expected missing address error")
	}
}

func TestNewServerRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0"}); err == nil {
		t.Fatal("expected missing store error")
	}
}

func TestServeStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", Store: seededStore()})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, listener) }()

	client := &http.Client{
		Timeout:   2 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	resp, err := client.Get("http://" + listener.Addr().String() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("get healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz = %d %q", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestServeStopsOnClose(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", Store: seededStore()})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- server.Serve(context.Background(), listener) }()

	// Close may land before Serve starts; keep closing until Serve returns.
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)
	for {
		server.Close()
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("serve returned %v", err)
			}
			return
		case <-ticker.C:
		case <-timeout:
			t.Fatal("serve did not stop after close")
		}
	}
}

func TestServeRejectsMissingInputs(t *testing.T) {
	t.Parallel()

	var nilServer *Server
	if err := nilServer.Serve(context.Background(), nil); err == nil {
		t.Fatal("expected nil server error")
	}
	server, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", Store: seededStore()})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := server.Serve(context.Background(), nil); err == nil {
		t.Fatal("expected missing listener error")
	}
	nilServer.Close()
}

func TestListenAndServeReportsBindFailure(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	server, err := NewServer(context.Background(), Config{HTTPAddr: listener.Addr().String(), Store: seededStore()})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	err = server.ListenAndServe(context.Background())
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("err = %v, want bind failure", err)
	}
}
