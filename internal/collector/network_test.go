package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"

	"github.com/kostyay/basementhq/internal/model"
	"github.com/kostyay/basementhq/internal/rate"
)

func TestNetwork_SumsNonLoopbackAndRates(t *testing.T) {
	n := NewNetwork(rate.NewMeter(), nil)
	t0 := time.Unix(1_700_000_000, 0)
	now := t0
	n.now = func() time.Time { return now }
	recv := uint64(1000)
	n.counters = func(context.Context) ([]net.IOCountersStat, error) {
		return []net.IOCountersStat{
			{Name: "lo", BytesRecv: 1 << 40, BytesSent: 1 << 40},
			{Name: "eth0", BytesRecv: recv, BytesSent: 500},
			{Name: "wlan0", BytesRecv: 0, BytesSent: 500},
		}, nil
	}

	first := n.Collect(context.Background())
	assert.True(t, first.IsOK())
	assert.Zero(t, first.Value.DownBytesPerSec)
	assert.Zero(t, first.Value.UpBytesPerSec)
	assert.Equal(t, uint64(1000), first.Value.BytesRecv)
	assert.Equal(t, uint64(1000), first.Value.BytesSent)

	now = t0.Add(2 * time.Second)
	recv += 2_097_152
	second := n.Collect(context.Background())
	assert.InDelta(t, 1_048_576, second.Value.DownBytesPerSec, 0.5)
	assert.Zero(t, second.Value.UpBytesPerSec)
}

func TestNetwork_CounterFailureIsUnavailable(t *testing.T) {
	n := NewNetwork(rate.NewMeter(), nil)
	n.counters = func(context.Context) ([]net.IOCountersStat, error) {
		return nil, errors.New("permission denied")
	}

	rep := n.Poll(context.Background())

	assert.Equal(t, model.StatusUnavailable, rep.Status)
	assert.Contains(t, rep.Reason, "permission denied")
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, isLoopback("lo"))
	assert.True(t, isLoopback("lo0"))
	assert.False(t, isLoopback("lowpan0x"))
	assert.False(t, isLoopback("eth0"))
	assert.False(t, isLoopback("local"))
}
