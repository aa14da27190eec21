package v1

import (
	"net/http"
	"slices"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/vmunix/renamarr/internal/events"
	"github.com/vmunix/renamarr/internal/metrics"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsReadLimit  = 4096
	wsBuffer     = 256
)

// EventJobSummary is the last message of a job stream.
const EventJobSummary = "job.summary"

// StreamMessage is one frame sent to websocket subscribers.
type StreamMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func (s *Server) listJobEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.deps.Jobs.Get(id) == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
		return
	}

	raw, err := s.deps.EventLog.ForEntity(r.Context(), events.EntityJob, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}

	resp := listEventsResponse{
		Items: make([]EventResponse, len(raw)),
		Total: len(raw),
	}
	for i, e := range raw {
		resp.Items[i] = EventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
			Payload:    json.RawMessage(e.Payload),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) upgrader() *websocket.Upgrader {
	u := &websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096}
	if len(s.cfg.AllowedOrigins) == 0 {
		return u
	}
	u.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(s.cfg.AllowedOrigins, "*") ||
			slices.Contains(s.cfg.AllowedOrigins, origin)
	}
	return u
}

// streamJob pushes a job's events over a websocket: first the persisted
// history, then live events, then a final summary once the job finishes.
func (s *Server) streamJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job := s.deps.Jobs.Get(id)
	if job == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
		return
	}

	// Subscribe before replaying so nothing published in between is lost.
	live := s.deps.Bus.SubscribeEntity(id, wsBuffer)
	defer s.deps.Bus.Unsubscribe(live)

	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", "job_id", id, "error", err)
		return
	}
	defer conn.Close()

	metrics.WebSocketConnections.Inc()
	defer metrics.WebSocketConnections.Dec()

	log := s.log.With("job_id", id)
	log.Debug("websocket connected")

	closed := make(chan struct{})
	go readControl(conn, closed)

	sent := make(map[string]struct{})
	send := func(e events.Event) bool {
		key := e.EventType() + "@" + e.OccurredAt().Format(time.RFC3339Nano)
		if _, dup := sent[key]; dup {
			return true
		}
		sent[key] = struct{}{}
		if err := writeFrame(conn, StreamMessage{Type: e.EventType(), Data: e}); err != nil {
			log.Debug("websocket write failed", "error", err)
			return false
		}
		return true
	}

	if s.deps.EventLog != nil {
		raw, err := s.deps.EventLog.ForEntity(r.Context(), events.EntityJob, id)
		if err != nil {
			log.Warn("replay job events", "error", err)
		}
		registry := events.DefaultRegistry()
		for _, re := range raw {
			e, err := registry.Unmarshal(re)
			if err != nil {
				log.Warn("decode job event", "event_id", re.ID, "error", err)
				continue
			}
			if !send(e) {
				return
			}
		}
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case e, ok := <-live:
			if !ok {
				closeStream(conn, websocket.CloseGoingAway, "server shutting down")
				return
			}
			if !send(e) {
				return
			}
		case <-job.Done():
			drain(live, send)
			if err := writeFrame(conn, StreamMessage{Type: EventJobSummary, Data: job.Summary()}); err != nil {
				return
			}
			closeStream(conn, websocket.CloseNormalClosure, "job finished")
			return
		case <-ping.C:
			deadline := time.Now().Add(wsWriteWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-closed:
			log.Debug("websocket closed by client")
			return
		case <-r.Context().Done():
			return
		}
	}
}

// drain forwards events still buffered when the job finished.
func drain(ch <-chan events.Event, send func(events.Event) bool) {
	for {
		select {
		case e, ok := <-ch:
			if !ok || !send(e) {
				return
			}
		default:
			return
		}
	}
}

// readControl consumes client frames so pongs and close frames are handled.
func readControl(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, msg StreamMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func closeStream(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
}
