package chats

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "conv1",
	}
	hub.register <- client

	data := []byte(`{"content":"hello test"}`)
	hub.Broadcast("conv1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	c1 := &Client{Send: make(chan []byte, 1), Room: "conv1"}
	c2 := &Client{Send: make(chan []byte, 1), Room: "conv2"}
	hub.register <- c1
	hub.register <- c2

	hub.Broadcast("conv1", []byte("only conv1"))

	select {
	case <-c1.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("conv1 client should receive the message")
	}

	select {
	case got := <-c2.Send:
		t.Fatalf("conv2 client should not receive %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubCallsDoNotBlockAfterStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	client := &Client{Send: make(chan []byte, 1), Room: "conv1"}

	done := make(chan bool, 1)
	go func() { done <- hub.Register(client) }()
	select {
	case ok := <-done:
		if ok {
			t.Fatal("register must fail once the hub has stopped")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Register blocked after Stop")
	}

	finished := make(chan struct{})
	go func() {
		hub.Unregister(client)
		hub.Broadcast("conv1", []byte("late"))
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(1 * time.Second):
		t.Fatal("Unregister/Broadcast blocked after Stop")
	}
}
