package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/model"
)

// Host reports CPU, memory and root disk utilisation.
type Host struct {
	log  *zap.Logger
	path string

	cpuPercent  func(ctx context.Context) (float64, error)
	memPercent  func(ctx context.Context) (float64, error)
	diskPercent func(ctx context.Context, path string) (float64, error)
}

// NewHost returns a host collector reading the disk mounted at "/".
func NewHost(log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{
		log:         log,
		path:        "/",
		cpuPercent:  readCPU,
		memPercent:  readMem,
		diskPercent: readDisk,
	}
}

// ID implements Source.
func (h *Host) ID() model.SourceID { return model.SourceHost }

// Poll implements Source.
func (h *Host) Poll(ctx context.Context) model.Report {
	return h.Collect(ctx).Report(h.ID())
}

// Collect reads the three figures. It is always OK: a figure that cannot
// be read is reported as 0 and logged.
func (h *Host) Collect(ctx context.Context) model.Result[model.HostResources] {
	var res model.HostResources
	var err error

	if res.CPUPercent, err = h.cpuPercent(ctx); err != nil {
		h.log.Warn("cpu read failed", zap.Error(err))
		res.CPUPercent = 0
	}
	if res.RAMPercent, err = h.memPercent(ctx); err != nil {
		h.log.Warn("memory read failed", zap.Error(err))
		res.RAMPercent = 0
	}
	if res.DiskPercent, err = h.diskPercent(ctx, h.path); err != nil {
		h.log.Warn("disk read failed", zap.String("path", h.path), zap.Error(err))
		res.DiskPercent = 0
	}
	return model.OK(res)
}

func readCPU(ctx context.Context) (float64, error) {
	// interval 0 compares against the previous call, so it never sleeps
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, nil
	}
	return pcts[0], nil
}

func readMem(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

func readDisk(ctx context.Context, path string) (float64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	return usage.UsedPercent, nil
}
