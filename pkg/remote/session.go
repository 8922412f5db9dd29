package remote

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/build"
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/middleware"
	"github.com/weft-dev/weft/pkg/weft"
)

// RootFunc produces the blueprint mounted for a new session.
type RootFunc func() *blueprint.Blueprint

// SessionConfig tunes one session's transport behavior.
type SessionConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	SendBuffer        int
}

// DefaultSessionConfig returns the production defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		SendBuffer:        64,
	}
}

// Session is one connected client: a websocket, a runtime with its
// dispatch loop, a builder, and the mirroring host. Events flow in on
// ReadLoop, are dispatched onto the runtime loop, and the mutations of
// each flush flow back out through WriteLoop.
type Session struct {
	ID string

	conn    *websocket.Conn
	rt      *weft.Runtime
	host    *TreeHost
	builder *build.Builder
	logger  *slog.Logger
	config  SessionConfig

	send chan []byte
	done chan struct{}

	closeOnce  sync.Once
	closed     atomic.Bool
	lastActive atomic.Int64
	ackSeq     atomic.Uint64
}

// NewSession creates a session over an upgraded connection.
func NewSession(conn *websocket.Conn, logger *slog.Logger, cfg SessionConfig) *Session {
	id := uuid.NewString()
	logger = logger.With("session", id)

	s := &Session{
		ID:     id,
		conn:   conn,
		rt:     weft.NewRuntime(weft.WithLogger(logger)),
		host:   NewTreeHost(),
		logger: logger,
		config: cfg,
		send:   make(chan []byte, cfg.SendBuffer),
		done:   make(chan struct{}),
	}
	s.builder = build.New(s.rt, s.host, build.WithLogger(logger))
	s.touch()
	return s
}

// Runtime returns the session's runtime, for tests and stores.
func (s *Session) Runtime() *weft.Runtime {
	return s.rt
}

// Host returns the session's mirroring host.
func (s *Session) Host() *TreeHost {
	return s.host
}

// Done returns a channel closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// ResumeMarker is the persisted record of a session's transfer state.
type ResumeMarker struct {
	SessionID string `msgpack:"sid"`
	Seq       uint64 `msgpack:"seq"`
	AckSeq    uint64 `msgpack:"ack"`
}

// Snapshot returns an opaque marker a snapshot store can persist: the
// last flushed and last acknowledged batch sequences.
func (s *Session) Snapshot() ([]byte, error) {
	return encodeBody(ResumeMarker{
		SessionID: s.ID,
		Seq:       s.host.Seq(),
		AckSeq:    s.ackSeq.Load(),
	})
}

// Start launches the runtime loop, mounts the root blueprint, sends the
// handshake with the initial tree, and starts the transport loops.
func (s *Session) Start(root RootFunc) error {
	go s.rt.Run()

	var mountErr error
	s.dispatch(func() {
		start := time.Now()
		container := s.host.CreateElement("body").(*treeNode)
		if _, err := s.builder.Mount(root(), container); err != nil {
			mountErr = err
			return
		}
		middleware.RecordBuild(time.Since(start))
		s.sendHandshake(container.id)
	})
	if mountErr != nil {
		s.Close()
		return mountErr
	}

	go s.ReadLoop()
	go s.WriteLoop()
	return nil
}

// dispatch runs fn on the runtime loop and flushes the resulting
// mutations, synchronously from the caller's view. A closing runtime
// may drop the closure without running it, so the wait also watches the
// session's done channel; dispatch then returns without fn having run,
// which only happens when the session is already tearing down.
func (s *Session) dispatch(fn func()) {
	ran := make(chan struct{})
	s.rt.Do(func() {
		defer close(ran)
		fn()
		s.flush()
	})
	select {
	case <-ran:
	case <-s.done:
	}
}

// flush drains the host's pending mutations into one sequenced frame.
// Runs on the runtime loop.
func (s *Session) flush() {
	batch := s.host.Flush()
	if batch == nil {
		return
	}
	middleware.RecordFlush(len(batch.Mutations))
	body, err := encodeBody(batch)
	if err != nil {
		s.logger.Error("mutation batch encode failed", "error", err)
		return
	}
	s.enqueue(&Frame{Type: FrameMutations, Flags: FlagSequenced, Payload: body})
}

func (s *Session) sendHandshake(rootID uint32) {
	body, err := encodeBody(&Handshake{SessionID: s.ID, Root: rootID})
	if err != nil {
		s.logger.Error("handshake encode failed", "error", err)
		return
	}
	s.enqueue(NewFrame(FrameHandshake, body))
}

func (s *Session) sendError(code, msg string) {
	body, err := encodeBody(&ErrorMsg{Code: code, Message: msg})
	if err != nil {
		return
	}
	s.enqueue(NewFrame(FrameError, body))
}

// enqueue hands an encoded frame to WriteLoop. A full send buffer drops
// the frame; the client resyncs from the sequence gap.
func (s *Session) enqueue(f *Frame) {
	if s.closed.Load() {
		return
	}
	select {
	case s.send <- f.Encode():
	default:
		s.logger.Warn("send buffer full, dropping frame", "type", f.Type.String())
	}
}

// ReadLoop reads frames until the connection closes.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.touch()

		frame, err := DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			continue
		}

		switch frame.Type {
		case FrameEvent:
			s.handleEventFrame(frame.Payload)
		case FrameControl:
			s.handleControlFrame(frame.Payload)
		case FrameAck:
			s.handleAckFrame(frame.Payload)
		default:
			s.logger.Warn("unknown frame type", "type", frame.Type.String())
		}
	}
}

// handleEventFrame dispatches one client input event onto the runtime
// loop. Input-like events also feed the node's observers so
// bidirectional bindings see the new value.
func (s *Session) handleEventFrame(payload []byte) {
	var msg EventMsg
	if err := decodeBody(payload, &msg); err != nil {
		s.logger.Error("event decode error", "error", err)
		s.sendError("invalid-event", "malformed event frame")
		return
	}

	ev := host.Event{
		Type:    msg.Type,
		Value:   msg.Value,
		Checked: msg.Checked,
		Key:     msg.Key,
		Data:    msg.Data,
	}
	start := time.Now()
	_, endSpan := middleware.StartEventSpan(context.Background(), s.ID, msg.Type, msg.Node)
	defer func() {
		endSpan(nil)
		middleware.RecordEvent(msg.Type, time.Since(start), true)
	}()
	s.dispatch(func() {
		switch msg.Type {
		case "input", "change":
			s.host.DispatchObservation(msg.Node, host.ObserveInput, msg.Value)
		case "resize":
			s.host.DispatchObservation(msg.Node, host.ObserveResize, msg.Data)
		}
		s.host.DispatchEvent(msg.Node, ev)
	})
}

func (s *Session) handleControlFrame(payload []byte) {
	var msg ControlMsg
	if err := decodeBody(payload, &msg); err != nil {
		s.logger.Error("control decode error", "error", err)
		return
	}

	switch msg.Kind {
	case ControlPing:
		s.sendControl(ControlPong, msg.Timestamp)
	case ControlPong:
		s.logger.Debug("received pong")
	case ControlClose:
		s.logger.Info("client closing", "reason", msg.Reason)
		s.Close()
	}
}

func (s *Session) handleAckFrame(payload []byte) {
	var msg AckMsg
	if err := decodeBody(payload, &msg); err != nil {
		s.logger.Error("ack decode error", "error", err)
		return
	}
	s.ackSeq.Store(msg.LastSeq)
}

func (s *Session) sendControl(kind ControlKind, ts uint64) {
	body, err := encodeBody(&ControlMsg{Kind: kind, Timestamp: ts})
	if err != nil {
		return
	}
	s.enqueue(NewFrame(FrameControl, body))
}

// WriteLoop writes queued frames and heartbeats until the session ends.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				s.logger.Error("write error", "error", err)
				s.Close()
				return
			}

		case <-ticker.C:
			s.sendControl(ControlPing, uint64(time.Now().UnixMilli()))

		case <-s.done:
			return
		}
	}
}

// Close tears the session down: transport first, then the runtime loop.
// Safe to call from any goroutine, any number of times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)
		if s.conn != nil {
			s.conn.Close()
		}
		s.rt.Close()
		s.logger.Info("session closed")
	})
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// IdleFor reports how long since the client last sent anything.
func (s *Session) IdleFor() time.Duration {
	return time.Since(time.Unix(0, s.lastActive.Load()))
}
