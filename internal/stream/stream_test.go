package stream

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/modes"
	"github.com/pacce/ventilation/internal/packet"
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

func testPCV(t *testing.T) *modes.PCV {
	t.Helper()
	c, err := cycle.New(cycle.Timing{Inspiration: time.Second, Expiration: 3 * time.Second})
	if err != nil {
		t.Fatal(err)
	}
	return modes.NewPCV(quantity.MustPressure(5), quantity.MustPressure(20), c)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastAndRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(1)
	go hub.Run(ctx)

	srv := httptest.NewServer(NewServer("", hub).Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.Clients() == 1 })

	hub.OnStep(sim.Sample{
		Time:  250 * time.Millisecond,
		Phase: cycle.Inspiration,
		Packet: packet.Packet{
			Flow:     quantity.MustFlow(0.5),
			Pressure: quantity.MustPressure(12),
			Volume:   quantity.MustVolume(0.1),
		},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if f.Type != "sample" || f.Phase != "inspiration" || f.Pressure != 12 || f.Time != 0.25 {
		t.Errorf("unexpected frame %+v", f)
	}

	if err := conn.WriteJSON(Msg{Type: "peep", Content: "8"}); err != nil {
		t.Fatal(err)
	}
	m := testPCV(t)
	waitFor(t, func() bool {
		hub.Apply(m)
		return m.PEEP().Equal(quantity.MustPressure(8))
	})
}

func TestHubDecimates(t *testing.T) {
	hub := NewHub(10)
	for i := 0; i < 95; i++ {
		hub.OnStep(sim.Sample{})
	}
	if got := len(hub.broadcast); got != 9 {
		t.Errorf("expected 9 frames queued, got %d", got)
	}
}

func TestApplyRejects(t *testing.T) {
	m := testPCV(t)
	for _, msg := range []Msg{
		{Type: "peep", Content: "abc"},
		{Type: "rate", Content: "20"},
		{Type: "peep", Content: "NaN"},
	} {
		if err := apply(m, msg); err == nil {
			t.Errorf("expected %+v to be rejected", msg)
		}
	}
	if !m.PEEP().Equal(quantity.MustPressure(5)) {
		t.Error("rejected requests must not change the mode")
	}
	if err := apply(m, Msg{Type: "peak", Content: "25"}); err != nil {
		t.Fatal(err)
	}
	if !m.Peak().Equal(quantity.MustPressure(25)) {
		t.Error("peak not applied")
	}
}

func TestDrive(t *testing.T) {
	m := testPCV(t)
	s := sim.New(m, lung.New(quantity.MustResistance(50), quantity.MustElastance(33.3)))
	hub := NewHub(100)
	hub.msg <- Msg{Type: "peak", Content: "22"}

	cfg := sim.Config{Dt: time.Millisecond, Duration: 500 * time.Millisecond}
	if err := Drive(context.Background(), s, cfg, hub, 0); err != nil {
		t.Fatalf("drive failed: %v", err)
	}
	if !m.Peak().Equal(quantity.MustPressure(22)) {
		t.Error("queued request not applied")
	}
	if got := len(hub.broadcast); got != 5 {
		t.Errorf("expected 5 frames, got %d", got)
	}
}
