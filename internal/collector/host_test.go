package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kostyay/basementhq/internal/model"
)

func TestHost_Collect(t *testing.T) {
	h := NewHost(nil)
	h.cpuPercent = func(context.Context) (float64, error) { return 12.5, nil }
	h.memPercent = func(context.Context) (float64, error) { return 40, nil }
	h.diskPercent = func(_ context.Context, path string) (float64, error) {
		assert.Equal(t, "/", path)
		return 71.2, nil
	}

	res := h.Collect(context.Background())

	assert.True(t, res.IsOK())
	assert.Equal(t, model.HostResources{CPUPercent: 12.5, RAMPercent: 40, DiskPercent: 71.2}, res.Value)
}

func TestHost_FailedReadIsZeroButOK(t *testing.T) {
	h := NewHost(nil)
	h.cpuPercent = func(context.Context) (float64, error) { return 99, errors.New("no /proc") }
	h.memPercent = func(context.Context) (float64, error) { return 50, nil }
	h.diskPercent = func(context.Context, string) (float64, error) { return 0, errors.New("denied") }

	rep := h.Poll(context.Background())

	assert.Equal(t, model.StatusOK, rep.Status)
	assert.Equal(t, model.HostResources{RAMPercent: 50}, rep.Payload)
}

func TestHost_RealReaders(t *testing.T) {
	res := NewHost(nil).Collect(context.Background())

	assert.True(t, res.IsOK())
	assert.GreaterOrEqual(t, res.Value.RAMPercent, 0.0)
	assert.LessOrEqual(t, res.Value.RAMPercent, 100.0)
}
