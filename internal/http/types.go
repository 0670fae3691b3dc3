package httphandler

import (
	"io/fs"
	"math/rand"
	"sync"
	"time"

	"bombfour/internal/config"
	"bombfour/internal/game"
	"bombfour/internal/session"
	"bombfour/internal/util"

	"github.com/gammazero/deque"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Room hosts one engine for the browser that created it
type Room struct {
	mu        sync.Mutex
	Code      string
	OwnerID   string
	Preset    string
	Engine    *game.Engine
	CreatedAt time.Time
	Touched   time.Time
	Rev       int
	Thinking  bool // opponent reply scheduled but not applied yet
	events    deque.Deque[Event]
	subs      map[chan struct{}]struct{}
}

// Event is one line of the room's history shown under the board
type Event struct {
	Rev  int       `json:"rev"`
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Handler serves the UI for every room kept in memory
type Handler struct {
	cfg      config.Config
	log      *logrus.Logger
	sessions *session.Manager
	tmplFS   fs.FS
	staticFS fs.FS

	roomsMu sync.RWMutex
	rooms   map[string]*Room

	upgrader websocket.Upgrader
	// after schedules the opponent's reply; time.AfterFunc outside tests
	after func(d time.Duration, f func())
}

// New builds a handler; templates and static assets come from the embedded filesystems
func New(cfg config.Config, logger *logrus.Logger, sessions *session.Manager, templates, static fs.FS) *Handler {
	return &Handler{
		cfg:      cfg,
		log:      logger,
		sessions: sessions,
		tmplFS:   templates,
		staticFS: static,
		rooms:    make(map[string]*Room),
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// newRNG returns the random source for a new room
func (h *Handler) newRNG() *rand.Rand {
	seed := h.cfg.Seed
	if seed == 0 {
		s, err := util.RandSeed()
		if err != nil {
			h.log.WithError(err).Warn("seed from clock")
			s = time.Now().UnixNano()
		}
		seed = s
	}
	return rand.New(rand.NewSource(seed))
}

// record appends an event and trims the log to the configured size; room lock held
func (h *Handler) record(rm *Room, text string) {
	rm.events.PushBack(Event{Rev: rm.Rev, At: time.Now(), Text: text})
	for rm.events.Len() > h.cfg.Server.EventLog && rm.events.Len() > 0 {
		rm.events.PopFront()
	}
}

// history returns the events newest first; room lock held
func (rm *Room) history() []Event {
	out := make([]Event, 0, rm.events.Len())
	for i := rm.events.Len() - 1; i >= 0; i-- {
		out = append(out, rm.events.At(i))
	}
	return out
}
