// Package server exposes the alignment engine to the audio-player frontend
// over a WebSocket endpoint.
//
// A connected client streams JSON messages: transcript fragments to locate in
// the reference script, (transcript, chunk) pairs to score, and word pairs to
// gate for highlighting. Each message is answered independently; the engine
// underneath is stateless, so the connection carries no session state beyond
// the socket itself.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/langdu/langdu/internal/locate"
	"github.com/langdu/langdu/internal/observe"
	"github.com/langdu/langdu/pkg/fuzzy"
)

// pingInterval is how often an idle connection is pinged to detect dead
// clients behind NAT or suspended browser tabs.
const pingInterval = 30 * time.Second

// Server handles sync connections against one prebuilt script locator.
// It is safe for concurrent use: the locator is read-only and the scoring
// functions are pure.
type Server struct {
	locator *locate.Locator
	weights fuzzy.Weights
	metrics *observe.Metrics
}

// New creates a [Server] serving queries against loc, scoring compares with
// weights. metrics may not be nil; pass [observe.DefaultMetrics] outside
// tests.
func New(loc *locate.Locator, weights fuzzy.Weights, metrics *observe.Metrics) *Server {
	return &Server{
		locator: loc,
		weights: weights,
		metrics: metrics,
	}
}

// Register adds the /sync route to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /sync", s.handleSync)
}

// handleSync upgrades the request to a WebSocket and serves the message loop
// until the client disconnects or the request context ends.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The player frontend is served from a different origin during
		// development; message semantics carry no ambient authority.
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		observe.Logger(r.Context()).Warn("websocket accept failed", "err", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	s.metrics.ActiveClients.Add(ctx, 1)
	defer s.metrics.ActiveClients.Add(ctx, -1)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := conn.Ping(ctx); err != nil {
					return err
				}
			}
		}
	})

	g.Go(func() error {
		for {
			var req request
			if err := wsjson.Read(ctx, conn, &req); err != nil {
				return err
			}
			if err := wsjson.Write(ctx, conn, s.handle(ctx, req)); err != nil {
				return err
			}
		}
	})

	err = g.Wait()
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		err = nil
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		observe.Logger(ctx).Debug("sync connection ended", "err", err)
	}
	conn.Close(websocket.StatusNormalClosure, "bye")
}

// handle dispatches one client message and builds its response.
func (s *Server) handle(ctx context.Context, req request) response {
	switch req.Type {
	case messageTranscript:
		return s.handleTranscript(ctx, req)
	case messageCompare:
		return s.handleCompare(ctx, req)
	case messageHighlight:
		return s.handleHighlight(ctx, req)
	default:
		s.metrics.RecordMessage(ctx, string(req.Type), "error")
		return errorResponse(req.ID, "unknown message type %q", req.Type)
	}
}

// handleTranscript locates a transcript fragment in the script.
func (s *Server) handleTranscript(ctx context.Context, req request) response {
	ctx, span := observe.StartSpan(ctx, "locate.query")
	defer span.End()

	start := time.Now()
	m, ok := s.locator.Query(req.Text)
	s.metrics.RecordQuery(ctx, time.Since(start).Seconds(), ok)
	s.metrics.RecordMessage(ctx, string(req.Type), "ok")

	if !ok {
		return response{ID: req.ID, Type: "miss"}
	}
	return response{
		ID:   req.ID,
		Type: "position",
		Position: &position{
			WindowID:    m.WindowID,
			StartWord:   m.StartWord,
			EndWord:     m.EndWord,
			MatchedText: m.MatchedText,
			Score:       m.AlignmentScore,
			Confidence:  m.Confidence,
		},
	}
}

// handleCompare scores one transcript fragment against one candidate chunk.
func (s *Server) handleCompare(ctx context.Context, req request) response {
	ctx, span := observe.StartSpan(ctx, "similarity.compare")
	defer span.End()

	start := time.Now()
	combined := s.weights.Combined(req.Transcript, req.Chunk)
	word := fuzzy.WordSimilarity(req.Transcript, req.Chunk)
	s.metrics.CompareDuration.Record(ctx, time.Since(start).Seconds())
	s.metrics.RecordMessage(ctx, string(req.Type), "ok")

	return response{
		ID:   req.ID,
		Type: "scores",
		Scores: &scores{
			Combined:  combined,
			WordLevel: word,
		},
	}
}

// handleHighlight answers a per-word similarity verdict. The threshold is
// part of every request: the engine never defaults it silently, so a missing
// threshold is an invalid argument rather than a judgement call.
func (s *Server) handleHighlight(ctx context.Context, req request) response {
	if req.Threshold == nil {
		s.metrics.RecordMessage(ctx, string(req.Type), "error")
		return errorResponse(req.ID, "highlight requires a threshold")
	}

	similar := fuzzy.AreSimilar(req.Word, req.Target, *req.Threshold)
	s.metrics.RecordMessage(ctx, string(req.Type), "ok")

	return response{
		ID:      req.ID,
		Type:    "verdict",
		Similar: &similar,
	}
}
