package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/metrics"
	"github.com/rustyeddy/backview/replay"
	"github.com/rustyeddy/backview/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The browser frontend runs on another port in development; origin
	// policy is the CORS config's job, not the socket's.
	CheckOrigin: func(*http.Request) bool { return true },
}

var errNoRun = errors.New("no run loaded")

// wsCommand is one client instruction on the replay socket.
type wsCommand struct {
	Action  string `json:"action"`
	RunID   string `json:"run_id,omitempty"`
	SpeedMs int    `json:"speed_ms,omitempty"`
	Overlay string `json:"overlay,omitempty"`
	Hidden  bool   `json:"hidden,omitempty"`
}

// wsMessage is one server message: a frame or an error.
type wsMessage struct {
	Type  string        `json:"type"`
	Data  *replay.Frame `json:"data,omitempty"`
	Error string        `json:"error,omitempty"`
}

// session owns one websocket connection: the loaded run, its replay
// controller, and the client's overlay toggles.
//
// Locking: commands release mu before calling into the controller, and
// controller callbacks take mu only to compose. That keeps the lock
// order controller-then-session everywhere.
type session struct {
	store store.Store
	log   *slog.Logger

	mu      sync.Mutex
	epoch   uint64 // bumps on load and teardown; stale callbacks check it
	ctrl    *replay.Controller
	comp    *replay.Compositor
	hidden  map[backtest.OverlayID]bool
	speedMs int

	out  chan wsMessage
	done chan struct{}
}

// handleWS upgrades the connection and pumps it until the client goes
// away. Each connection gets its own controller; closing the socket
// stops its timer.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	sess := &session{
		store:   s.store,
		log:     s.log.With("remote", conn.RemoteAddr().String()),
		hidden:  map[backtest.OverlayID]bool{},
		speedMs: s.cfg.Replay.SpeedMs,
		out:     make(chan wsMessage, 64),
		done:    make(chan struct{}),
	}
	metrics.SessionOpened()
	sess.log.Info("replay session opened")

	go sess.writeLoop(conn)
	sess.readLoop(conn)

	sess.teardown()
	conn.Close()
	metrics.SessionClosed()
	sess.log.Info("replay session closed")
}

func (sess *session) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd wsCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			sess.sendError(fmt.Sprintf("bad command: %v", err))
			continue
		}
		if err := sess.handle(cmd); err != nil {
			sess.sendError(err.Error())
		}
	}
}

func (sess *session) writeLoop(conn *websocket.Conn) {
	for {
		select {
		case msg := <-sess.out:
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-sess.done:
			return
		}
	}
}

func (sess *session) handle(cmd wsCommand) error {
	switch cmd.Action {
	case "load":
		return sess.load(cmd.RunID)

	case "play":
		ctrl := sess.controller()
		if ctrl == nil {
			return errNoRun
		}
		ctrl.Start()
		return nil

	case "stop":
		ctrl := sess.controller()
		if ctrl == nil {
			return errNoRun
		}
		ctrl.Stop()
		return nil

	case "reset":
		sess.mu.Lock()
		ctrl := sess.ctrl
		length := 0
		if sess.comp != nil {
			length = sess.comp.Len()
		}
		sess.mu.Unlock()
		if ctrl == nil {
			return errNoRun
		}
		ctrl.Reset(length)
		return nil

	case "speed":
		if cmd.SpeedMs <= 0 {
			return errors.New("speed_ms must be positive")
		}
		sess.mu.Lock()
		sess.speedMs = cmd.SpeedMs
		ctrl := sess.ctrl
		sess.mu.Unlock()
		if ctrl != nil {
			ctrl.SetSpeed(cmd.SpeedMs)
		}
		return nil

	case "toggle":
		ov := backtest.OverlayID(cmd.Overlay)
		if !ov.Valid() {
			return fmt.Errorf("unknown overlay %q", cmd.Overlay)
		}
		sess.mu.Lock()
		if cmd.Hidden {
			sess.hidden[ov] = true
		} else {
			delete(sess.hidden, ov)
		}
		ctrl := sess.ctrl
		sess.mu.Unlock()
		if ctrl != nil {
			sess.emit(ctrl.State())
		}
		return nil

	default:
		return fmt.Errorf("unknown action %q", cmd.Action)
	}
}

// load swaps the session onto a new run. The old controller is closed
// first, so its timer can never touch the new compositor.
func (sess *session) load(runID string) error {
	if runID == "" {
		return errors.New("load requires run_id")
	}
	res, err := sess.store.GetRun(context.Background(), runID)
	if err != nil {
		return err
	}
	comp := replay.NewCompositor(res)

	sess.mu.Lock()
	old := sess.ctrl
	sess.ctrl = nil
	sess.epoch++
	epoch := sess.epoch
	sess.comp = comp
	speed := sess.speedMs
	sess.mu.Unlock()

	if old != nil {
		old.Close()
	}

	ctrl := replay.NewController(comp.Len(), speed, countingScheduler{}, func(st replay.State) {
		sess.onChange(epoch, st)
	})

	sess.mu.Lock()
	sess.ctrl = ctrl
	sess.mu.Unlock()

	sess.log.Info("run loaded", "run_id", runID, "candles", comp.Len())
	sess.emit(ctrl.State())
	return nil
}

// onChange runs inside the controller's lock on every state
// transition, including timer ticks.
func (sess *session) onChange(epoch uint64, st replay.State) {
	sess.mu.Lock()
	if epoch != sess.epoch || sess.comp == nil {
		sess.mu.Unlock()
		return
	}
	frame := sess.comp.Compose(st, sess.hidden)
	sess.mu.Unlock()

	sess.push(wsMessage{Type: "frame", Data: frame})
	metrics.FrameComposed("ws")
}

// emit composes and queues a frame for the current session state.
func (sess *session) emit(st replay.State) {
	sess.mu.Lock()
	if sess.comp == nil {
		sess.mu.Unlock()
		return
	}
	frame := sess.comp.Compose(st, sess.hidden)
	sess.mu.Unlock()

	sess.push(wsMessage{Type: "frame", Data: frame})
	metrics.FrameComposed("ws")
}

func (sess *session) sendError(msg string) {
	sess.push(wsMessage{Type: "error", Error: msg})
}

// push enqueues without ever blocking: it can be called from inside
// the controller's lock, and a stalled client must not stall the
// replay timer. When the buffer is full the oldest frame is dropped;
// the client only ever misses intermediate snapshots.
func (sess *session) push(msg wsMessage) {
	select {
	case <-sess.done:
		return
	default:
	}
	select {
	case sess.out <- msg:
		return
	default:
	}
	select {
	case <-sess.out:
	default:
	}
	select {
	case sess.out <- msg:
	default:
	}
}

func (sess *session) controller() *replay.Controller {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.ctrl
}

func (sess *session) teardown() {
	sess.mu.Lock()
	ctrl := sess.ctrl
	sess.ctrl = nil
	sess.comp = nil
	sess.epoch++
	sess.mu.Unlock()

	if ctrl != nil {
		ctrl.Close()
	}
	close(sess.done)
}

// countingScheduler is the real ticker with the tick counter on top.
type countingScheduler struct{}

func (countingScheduler) Every(interval time.Duration, fn func()) (stop func()) {
	return replay.TickerScheduler{}.Every(interval, func() {
		metrics.TickDelivered()
		fn()
	})
}
