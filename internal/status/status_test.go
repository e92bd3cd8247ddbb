package status_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/adityaksh/sakha/internal/status"
)

func receive(t *testing.T, ch <-chan status.Event) status.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return status.Event{}
	}
}

func TestPublish_ReachesAllSubscribers(t *testing.T) {
	t.Parallel()
	h := status.NewHub()
	a, cancelA := h.Subscribe()
	defer cancelA()
	b, cancelB := h.Subscribe()
	defer cancelB()

	h.Publish(status.Event{Kind: status.EventReply, Text: "Namaste Boss!"})

	for _, ch := range []<-chan status.Event{a, b} {
		e := receive(t, ch)
		if e.Kind != status.EventReply || e.Text != "Namaste Boss!" {
			t.Errorf("got %+v, want the published reply event", e)
		}
		if e.At.IsZero() {
			t.Error("At not stamped")
		}
	}
}

func TestSubscribe_TwiceYieldsIndependentSubscriptions(t *testing.T) {
	t.Parallel()
	h := status.NewHub()
	_, cancelA := h.Subscribe()
	defer cancelA()
	_, cancelB := h.Subscribe()
	defer cancelB()

	if got := h.SubscriberCount(); got != 2 {
		t.Errorf("SubscriberCount() = %d, want 2", got)
	}
}

func TestUnsubscribe_StopsDeliveryAndClosesChannel(t *testing.T) {
	t.Parallel()
	h := status.NewHub()
	ch, cancel := h.Subscribe()

	cancel()
	cancel()

	h.Publish(status.Event{Kind: status.EventState, Text: "listening"})

	if _, ok := <-ch; ok {
		t.Error("received an event after unsubscribe")
	}
	if got := h.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}
}

func TestRecent_KeepsLastFiftyInOrder(t *testing.T) {
	t.Parallel()
	h := status.NewHub()
	for i := 0; i < 60; i++ {
		h.Publish(status.Event{Kind: status.EventPartial, Text: fmt.Sprintf("p%d", i)})
	}

	got := h.Recent()
	if len(got) != 50 {
		t.Fatalf("len(Recent()) = %d, want 50", len(got))
	}
	if got[0].Text != "p10" || got[49].Text != "p59" {
		t.Errorf("Recent() spans %q..%q, want p10..p59", got[0].Text, got[49].Text)
	}
}

func TestSlowSubscriber_DoesNotBlockPublish(t *testing.T) {
	t.Parallel()
	h := status.NewHub()
	_, cancel := h.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			h.Publish(status.Event{Kind: status.EventDownload, Text: "chunk"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestFeed_StreamsBacklogAndLiveEvents(t *testing.T) {
	t.Parallel()
	h := status.NewHub()
	h.Publish(status.Event{Kind: status.EventModel, Text: "downloaded"})

	srv := httptest.NewServer(status.NewFeed(h, nil))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	readEvent := func() status.Event {
		t.Helper()
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		var e status.Event
		if err := json.Unmarshal(data, &e); err != nil {
			t.Fatalf("Unmarshal(%q) error = %v", data, err)
		}
		return e
	}

	if e := readEvent(); e.Kind != status.EventModel || e.Text != "downloaded" {
		t.Errorf("backlog event = %+v, want the model event", e)
	}

	// The handler subscribes before sending the backlog, so once the
	// backlog event has arrived the subscription is live.
	h.Publish(status.Event{Kind: status.EventFinal, Text: "time kya hua"})
	if e := readEvent(); e.Kind != status.EventFinal || e.Text != "time kya hua" {
		t.Errorf("live event = %+v, want the final transcript", e)
	}
}
