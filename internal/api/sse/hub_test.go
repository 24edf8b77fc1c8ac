package sse

import (
	"testing"
	"time"

	"github.com/hurlingham/leaguesync/internal/notify"
	"github.com/hurlingham/leaguesync/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "change event",
			eventName: "changed",
			data:      "availability",
			expected:  "event: changed\ndata: availability\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastChange(notify.TableAvailability)

	select {
	case msg := <-client.send:
		expected := "event: changed\ndata: availability\n\n"
		if string(msg) != expected {
			t.Errorf("broadcast message = %q, want %q", string(msg), expected)
		}
	case <-time.After(time.Second):
		t.Error("no broadcast message received")
	}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client1 := NewClient(hub, "player1")
	client2 := NewClient(hub, "") // anonymous viewer
	hub.Register(client1)
	hub.Register(client2)
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastChange(notify.TableMatches)

	for _, client := range []*Client{client1, client2} {
		select {
		case msg := <-client.send:
			if string(msg) != "event: changed\ndata: matches\n\n" {
				t.Errorf("unexpected message %q", string(msg))
			}
		case <-time.After(time.Second):
			t.Error("client did not receive broadcast")
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}

	// The send channel is closed on unregister
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Error("send channel not closed")
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	client := NewClient(hub, "player1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
}
