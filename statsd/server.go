package statsd

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ash2k/stager"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tilinna/clock"

	backendTypes "github.com/statpipe/statpipe/backend/types"
	"github.com/statpipe/statpipe/types"
	"github.com/statpipe/statpipe/web"
)

// Server encapsulates all of the parameters necessary for starting up the
// aggregation daemon. These can either be set via command line or directly.
type Server struct {
	Backends          []backendTypes.Backend
	MetricsAddr       string
	WebConsoleAddr    string
	FlushInterval     time.Duration
	Percentile        float64
	Prefix            string
	PrefixEnabled     bool
	BadLinesPerSecond float64
	Viper             *viper.Viper
}

// SocketFactory is an indirection layer over net.ListenPacket() to allow for different implementations.
type SocketFactory func() (net.PacketConn, error)

// Run runs the server until context signals done.
func (s *Server) Run(ctx context.Context) error {
	return s.RunWithCustomSocket(ctx, func() (net.PacketConn, error) {
		return net.ListenPacket("udp", s.MetricsAddr)
	})
}

// RunWithCustomSocket runs the server until context signals done.
// Listening socket is created using sf.
func (s *Server) RunWithCustomSocket(ctx context.Context, sf SocketFactory) error {
	clck := clock.FromContext(ctx)

	logSink := LoggingFailSink(log.StandardLogger(), s.BadLinesPerSecond)
	lp := &lockedProcessor{}
	lp.p = NewProcessor(clck, func(line string) {
		atomic.AddUint64(&lp.badLines, 1)
		logSink(line)
	})

	var namer Namer = GraphiteNamer{}
	if s.PrefixEnabled {
		namer = PrefixNamer{Prefix: s.Prefix}
	}

	receiver := NewReceiver(lp)
	flusher := NewMetricFlusher(s.FlushInterval, s.Percentile, namer, lp, s.Backends)
	ticker := NewMeterTicker(types.TickInterval, lp)

	c, err := sf()
	if err != nil {
		return err
	}
	go func() {
		// This makes the receiver error out and stop.
		<-ctx.Done()
		if e := c.Close(); e != nil {
			log.Warnf("Error closing socket: %v", e)
		}
	}()

	stgr := stager.New()
	defer stgr.Shutdown()

	stage := stgr.NextStage()
	stage.StartWithContext(func(stageCtx context.Context) {
		ticker.Run(clock.Context(stageCtx, clck))
	})
	stage.StartWithContext(func(stageCtx context.Context) {
		flusher.Run(clock.Context(stageCtx, clck))
	})
	if s.WebConsoleAddr != "" {
		console := &web.ConsoleServer{
			Addr: s.WebConsoleAddr,
			Source: &serverStatus{
				lp:       lp,
				receiver: receiver,
				flusher:  flusher,
			},
		}
		stage.StartWithContext(console.Run)
	}

	stage = stgr.NextStage()
	stage.StartWithContext(func(stageCtx context.Context) {
		if err := receiver.Receive(stageCtx, c); err != nil {
			log.Warnf("Receiver error: %v", err)
		}
	})

	// Listen until done
	<-ctx.Done()
	return ctx.Err()
}

// lockedProcessor serializes updates, ticks and flushes against each other.
// The core Processor is deliberately unsynchronized; this is the single
// point of mutual exclusion for the whole pipeline.
type lockedProcessor struct {
	// Counter fields below must be read/written only using atomic instructions.
	// 64-bit fields must be the first fields in the struct to guarantee proper memory alignment.
	// See https://golang.org/pkg/sync/atomic/#pkg-note-BUG
	badLines uint64

	mu sync.Mutex
	p  *Processor
}

func (lp *lockedProcessor) ProcessLine(line string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.p.Process(line)
}

func (lp *lockedProcessor) TickMeters() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.p.TickMeters()
}

func (lp *lockedProcessor) Flush(interval time.Duration, percentile float64, namer Namer) []string {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.p.Flush(interval, percentile, namer)
}

type serverStatus struct {
	lp       *lockedProcessor
	receiver *Receiver
	flusher  *MetricFlusher
}

func (ss *serverStatus) Status() web.Status {
	rs := ss.receiver.GetStats()
	fs := ss.flusher.GetStats()
	ss.lp.mu.Lock()
	counters := len(ss.lp.p.Counters)
	timers := len(ss.lp.p.Timers)
	meters := len(ss.lp.p.Meters)
	gauges := len(ss.lp.p.Gauges)
	ss.lp.mu.Unlock()
	return web.Status{
		BadLines:        atomic.LoadUint64(&ss.lp.badLines),
		PacketsReceived: rs.PacketsReceived,
		LinesReceived:   rs.LinesReceived,
		LastPacket:      rs.LastPacket,
		LastFlush:       fs.LastFlush,
		LastFlushError:  fs.LastFlushError,
		Counters:        counters,
		Timers:          timers,
		Meters:          meters,
		QueuedGauges:    gauges,
	}
}
