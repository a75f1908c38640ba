package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"tienlen/internal/app"
	"tienlen/internal/app/identity"
	"tienlen/internal/domain"
)

// Server exposes registry rooms over HTTP and websockets.
type Server struct {
	registry    *app.Registry
	hub         *Hub
	directory   *identity.Directory
	idle        time.Duration
	botsEnabled bool
	personas    []string
	log         logrus.FieldLogger
	upgrader    websocket.Upgrader
	now         func() time.Time
}

// NewServer builds a server over registry. The registry's rooms must publish to hub.
func NewServer(registry *app.Registry, hub *Hub, directory *identity.Directory, opts app.Options, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		registry:    registry,
		hub:         hub,
		directory:   directory,
		idle:        opts.RoomIdleTimeout,
		botsEnabled: opts.BotsEnabled,
		personas:    opts.DefaultPersonas,
		log:         log.WithField("component", "ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		now: time.Now,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "rooms": s.registry.Len()})
	})
	r.Get("/rooms", s.handleListRooms)
	r.Route("/rooms/{name}", func(r chi.Router) {
		r.Get("/", s.handleRoom)
		r.Get("/ws", s.handleWebSocket)
	})
	return r
}

// Reap drops idle rooms every interval until ctx ends.
func (s *Server) Reap(ctx context.Context, every time.Duration) {
	if s.idle <= 0 || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.hub.closeRooms(s.registry.ReapIdle(s.now(), s.idle))
		}
	}
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rooms": s.registry.Names()})
}

// handleRoom returns the public view of a room. Hands are never included.
func (s *Server) handleRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := s.registry.Get(chi.URLParam(r, "name"))
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

// handleWebSocket joins the named room, creating it on first use. Identity comes from the
// "identity" query parameter; a fresh one is minted when absent.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	id := r.URL.Query().Get("identity")
	if id == "" {
		id = uuid.NewString()
	}
	if display := r.URL.Query().Get("name"); display != "" {
		s.directory.Register(id, display)
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	room := s.registry.Join(name)
	c := newClient(conn, room, id)
	log := s.log.WithFields(logrus.Fields{"room": name, "identity": id})
	s.hub.subscribe(c)
	go c.writePump()
	log.Info("client connected")

	if _, err := room.Rejoin(id); err != nil {
		log.WithError(err).Warn("rejoin failed")
	}
	snap := room.Snapshot()
	c.deliver(snapshotMessage(&snap, id))

	err = c.readPump(func(in Inbound) { s.dispatch(c, in) })
	log.WithError(err).Debug("read loop ended")

	stillWatching := s.hub.unsubscribe(c)
	c.close()
	if !stillWatching {
		if _, err := room.Disconnect(id); err != nil {
			log.WithError(err).Warn("disconnect failed")
		}
	}
	log.Info("client disconnected")
}

func (s *Server) dispatch(c *client, in Inbound) {
	var err error
	room := c.room
	switch in.Op {
	case OpChooseSeat:
		if in.Seat == nil {
			err = fmt.Errorf("%w: seat is required", errBadRequest)
			break
		}
		_, err = room.ChooseSeat(c.identity, *in.Seat)
	case OpSetStage:
		if !seated(room, c.identity) {
			err = app.ErrNotSeated
			break
		}
		_, err = room.SetStage(domain.Stage(in.Stage))
	case OpPlay:
		_, err = room.SubmitPlay(c.identity, in.Cards)
	case OpPass:
		_, err = room.Pass(c.identity)
	case OpForfeit:
		_, err = room.Forfeit(c.identity)
	case OpFillWithAI:
		if !s.botsEnabled {
			err = errBotsDisabled
			break
		}
		personas := in.Personas
		if len(personas) == 0 {
			personas = s.personas
		}
		_, err = room.FillWithAI(personas)
	case OpSync:
		snap := room.Snapshot()
		c.deliver(snapshotMessage(&snap, c.identity))
	default:
		err = fmt.Errorf("%w: unknown op %q", errBadRequest, in.Op)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{"op": in.Op, "identity": c.identity}).WithError(err).Debug("action rejected")
		c.deliver(errorMessage(in.Op, err))
	}
}

func seated(room *app.Room, identity string) bool {
	for _, seat := range room.Snapshot().Seats {
		if seat.ID == identity {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
