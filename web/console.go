// Package web provides a read-only HTTP console exposing daemon status.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Status is a point-in-time snapshot of the daemon.
type Status struct {
	BadLines        uint64    `json:"bad_lines"`
	PacketsReceived uint64    `json:"packets_received"`
	LinesReceived   uint64    `json:"lines_received"`
	LastPacket      time.Time `json:"last_packet"`
	LastFlush       time.Time `json:"last_flush"`
	LastFlushError  time.Time `json:"last_flush_error"`
	Counters        int       `json:"counters"`
	Timers          int       `json:"timers"`
	Meters          int       `json:"meters"`
	QueuedGauges    int       `json:"queued_gauges"`
}

// StatusSource provides the current Status. Implementations must be safe
// for concurrent use.
type StatusSource interface {
	Status() Status
}

// ConsoleServer listens for HTTP connections on Addr and serves status
// snapshots from Source.
type ConsoleServer struct {
	Addr   string
	Source StatusSource
}

// Run runs the ConsoleServer until the context is done.
func (cs *ConsoleServer) Run(ctx context.Context) {
	router := mux.NewRouter()
	router.HandleFunc("/status", cs.handleStatus).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         cs.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("Error shutting down web console: %v", err)
		}
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warnf("Web console server failed: %v", err)
	}
}

func (cs *ConsoleServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cs.Source.Status()); err != nil {
		log.Warnf("Error encoding status: %v", err)
	}
}
