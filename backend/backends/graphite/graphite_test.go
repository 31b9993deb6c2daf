package graphite

import (
	"context"
	"io/ioutil"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMetrics(t *testing.T) {
	t.Parallel()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := ioutil.ReadAll(conn)
		received <- data
	}()

	c, err := NewClient(l.Addr().String())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = c.SendMetrics(ctx, []string{"stats.gorets 4 42\nstats_counts.gorets 42 42", "statsd.numStats 1 42"})
	require.NoError(t, err)

	select {
	case data := <-received:
		assert.Equal(t, "stats.gorets 4 42\nstats_counts.gorets 42 42\nstatsd.numStats 1 42\n", string(data))
	case <-ctx.Done():
		t.Fatal("timed out waiting for payload")
	}
}

func TestSendMetricsEmptyReport(t *testing.T) {
	t.Parallel()
	c, err := NewClient("localhost:1")
	require.NoError(t, err)
	assert.NoError(t, c.SendMetrics(context.Background(), nil))
}

func TestNewClientRequiresAddress(t *testing.T) {
	t.Parallel()
	_, err := NewClient("")
	assert.Error(t, err)
}
