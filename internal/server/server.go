// Package server is the streaming HTTP/WebSocket front end of
// SPEC_FULL §4.11: POST /runs starts a simulation on its own
// goroutine with its own ssa.Config/rng instance, GET
// /runs/{id}/stream upgrades to a WebSocket and emits one JSON frame
// per ssa.Config.OnSample call (the t=0 state, then one per reaction
// event). It holds no state the core packages share
// across requests beyond the read-only *network.Network (spec.md §5).
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/deep6ix/gillespie/internal/config"
	"github.com/deep6ix/gillespie/network"
	"github.com/deep6ix/gillespie/ssa"
)

// Frame is one sample emitted over the WebSocket stream: a recorded
// time and the species values at that time, in the run's output
// column order.
type Frame struct {
	Time   float64          `json:"time"`
	Values map[string]int64 `json:"values"`
}

// Server holds the simulation-independent state shared by the HTTP
// handlers: the network every run simulates against, every run started
// by POST /runs keyed by its id (entries are never removed), and a
// logger.
type Server struct {
	net    *network.Network
	logger *zap.Logger

	mu   sync.Mutex
	runs map[string]*runState
}

type runState struct {
	frames chan Frame
	err    error
}

// New returns a Server that simulates against net. Passing a nil
// logger installs zap.NewNop().
func New(net *network.Network, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{net: net, logger: logger, runs: make(map[string]*runState)}
}

// Router builds the gorilla/mux route table: POST /runs, GET
// /runs/{id}/stream.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/runs", s.handleCreateRun).Methods(http.MethodPost)
	r.HandleFunc("/runs/{id}/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var opts config.RunOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		http.Error(w, "server: decode run request: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	state := &runState{
		frames: make(chan Frame, 64),
	}

	s.mu.Lock()
	s.runs[id] = state
	s.mu.Unlock()

	go s.execute(id, state, opts)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// execute runs one simulation to completion, forwarding every sample
// onto state.frames as ssa.Run produces it, then closes state.frames so
// handleStream's drain loop can return once the buffered frames are
// exhausted.
func (s *Server) execute(id string, state *runState, opts config.RunOptions) {
	defer close(state.frames)

	cfg := ssa.Config{
		Network:  s.net,
		Tmax:     opts.Tmax,
		NBSteps:  opts.NBSteps,
		Params:   opts.Params,
		Seed:     opts.Seed,
		Sparse:   opts.Sparse,
		VarNames: opts.VarNames,
		OnSample: func(t float64, names []string, x []int64) {
			values := make(map[string]int64, len(names))
			for i, name := range names {
				values[name] = x[i]
			}
			state.frames <- Frame{Time: t, Values: values}
		},
	}

	if _, err := ssa.Run(cfg); err != nil {
		s.logger.Warn("server: run failed", zap.String("run_id", id), zap.Error(err))
		state.err = err
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	state, ok := s.runs[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "server: unknown run id", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("server: websocket upgrade failed", zap.String("run_id", id), zap.Error(err))
		return
	}
	defer conn.Close()

	for frame := range state.frames {
		if err := conn.WriteJSON(frame); err != nil {
			s.logger.Warn("server: write frame failed", zap.String("run_id", id), zap.Error(err))
			return
		}
	}
}
