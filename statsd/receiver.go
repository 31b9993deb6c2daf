package statsd

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// ip packet size is stored in two bytes and that is how big in theory the packet can be.
// In practice it is highly unlikely but still possible to get packets bigger than usual MTU of 1500.
const packetSizeUDP = 0xffff

// LineHandler handles a single line of the inbound protocol.
type LineHandler interface {
	ProcessLine(line string)
}

// ReceiverStats holds statistics for a Receiver.
type ReceiverStats struct {
	LastPacket      time.Time
	PacketsReceived uint64
	LinesReceived   uint64
}

// Receiver receives datagrams on a PacketConn, frames them into lines and
// passes each line to the handler. Line validation is the handler's job.
type Receiver struct {
	// Counter fields below must be read/written only using atomic instructions.
	// 64-bit fields must be the first fields in the struct to guarantee proper memory alignment.
	// See https://golang.org/pkg/sync/atomic/#pkg-note-BUG
	lastPacket      int64 // When last packet was received. Unix timestamp in nsec.
	packetsReceived uint64
	linesReceived   uint64

	handler LineHandler
}

// NewReceiver initialises a new Receiver.
func NewReceiver(handler LineHandler) *Receiver {
	return &Receiver{
		handler: handler,
	}
}

// GetStats returns current Receiver stats. Safe for concurrent use.
func (mr *Receiver) GetStats() ReceiverStats {
	return ReceiverStats{
		LastPacket:      time.Unix(0, atomic.LoadInt64(&mr.lastPacket)),
		PacketsReceived: atomic.LoadUint64(&mr.packetsReceived),
		LinesReceived:   atomic.LoadUint64(&mr.linesReceived),
	}
}

// Receive accepts incoming datagrams on c until the context is done or the
// socket fails with a non-temporary error.
func (mr *Receiver) Receive(ctx context.Context, c net.PacketConn) error {
	buf := make([]byte, packetSizeUDP)
	for {
		// This will error out when the socket is closed.
		nbytes, _, err := c.ReadFrom(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && !netErr.Temporary() {
				select {
				case <-ctx.Done():
					return nil
				default:
					return fmt.Errorf("non-temporary error reading from socket: %v", err)
				}
			}
			log.Warnf("Error reading from socket: %v", err)
			continue
		}
		atomic.AddUint64(&mr.packetsReceived, 1)
		atomic.StoreInt64(&mr.lastPacket, time.Now().UnixNano())
		mr.handlePacket(buf[:nbytes])
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

// handlePacket splits the contents of a datagram into lines and hands each
// line to the handler.
func (mr *Receiver) handlePacket(msg []byte) {
	var numLines uint64
	for {
		idx := bytes.IndexByte(msg, '\n')
		var line []byte
		// protocol does not require line to end in \n
		if idx == -1 { // \n not found
			if len(msg) == 0 {
				break
			}
			line = msg
			msg = nil
		} else { // usual case
			line = msg[:idx]
			msg = msg[idx+1:]
		}
		if len(line) == 0 {
			continue
		}
		numLines++
		mr.handler.ProcessLine(string(line))
	}
	atomic.AddUint64(&mr.linesReceived, numLines)
}
