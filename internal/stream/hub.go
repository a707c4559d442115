// Package stream broadcasts simulation samples to websocket clients and
// feeds their setting changes back into the running mode.
package stream

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/pacce/ventilation/internal/modes"
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

// Frame is the JSON form of a sample sent to clients.
type Frame struct {
	Type     string  `json:"type"`
	Time     float64 `json:"t"`
	Phase    string  `json:"phase"`
	Flow     float64 `json:"flow"`
	Pressure float64 `json:"pressure"`
	Volume   float64 `json:"volume"`
}

// Msg is a client request: Type is "peep", "peak" or "tidal" and Content the
// new value in cmH2O or L.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Hub maintains the set of active clients and broadcasts frames to them.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan Frame
	// requests from clients, applied on the simulation goroutine
	msg chan Msg

	done chan struct{}

	// Every is the decimation factor: one frame per Every samples.
	Every int
	count int

	size atomic.Int64
}

func NewHub(every int) *Hub {
	if every < 1 {
		every = 1
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Frame, 256),
		msg:        make(chan Msg, 16),
		done:       make(chan struct{}),
		Every:      every,
	}
}

// Run serves registrations and broadcasts until ctx is done. It must be
// called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
			}
			h.clients = map[*client]struct{}{}
			h.size.Store(0)
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.size.Store(int64(len(h.clients)))
			log.WithField("clients", len(h.clients)).Info("client connected")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.size.Store(int64(len(h.clients)))
				log.WithField("clients", len(h.clients)).Info("client disconnected")
			}
		case f := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- f:
				default:
					// slow client
					delete(h.clients, c)
					close(c.send)
					h.size.Store(int64(len(h.clients)))
				}
			}
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int { return int(h.size.Load()) }

// OnStep implements sim.Observer and must be called from the simulation
// goroutine. Frames are dropped rather than blocking the simulation when the
// hub falls behind.
func (h *Hub) OnStep(s sim.Sample) {
	h.count++
	if h.count%h.Every != 0 {
		return
	}

	f := Frame{
		Type:     "sample",
		Time:     s.Time.Seconds(),
		Phase:    s.Phase.String(),
		Flow:     s.Packet.Flow.Float64(),
		Pressure: s.Packet.Pressure.Float64(),
		Volume:   s.Packet.Volume.Float64(),
	}
	select {
	case h.broadcast <- f:
	default:
	}
}

// Apply hands pending client requests to m. Call it from the goroutine that
// steps m.
func (h *Hub) Apply(m modes.Mode) {
	for {
		select {
		case msg := <-h.msg:
			if err := apply(m, msg); err != nil {
				log.WithError(err).WithField("type", msg.Type).Warn("request rejected")
			}
		default:
			return
		}
	}
}

func apply(m modes.Mode, msg Msg) error {
	v, err := strconv.ParseFloat(msg.Content, 64)
	if err != nil {
		return err
	}
	switch msg.Type {
	case "peep":
		p, err := quantity.NewPressure(v)
		if err != nil {
			return err
		}
		modes.SetPEEP(m, p)
	case "peak":
		p, err := quantity.NewPressure(v)
		if err != nil {
			return err
		}
		modes.SetPeak(m, p)
	case "tidal":
		vol, err := quantity.NewVolume(v)
		if err != nil {
			return err
		}
		modes.SetTidal(m, vol)
	default:
		return fmt.Errorf("no such type %q", msg.Type)
	}
	log.WithFields(log.Fields{"type": msg.Type, "value": v}).Info("setting changed")
	return nil
}

var _ sim.Observer = (*Hub)(nil)
