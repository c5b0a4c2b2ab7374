// Package docker lists containers from the local Docker daemon.
package docker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"go.uber.org/zap"

	hqerrors "github.com/kostyay/basementhq/internal/errors"
	"github.com/kostyay/basementhq/internal/model"
)

// dockerAPI is the subset of Docker client we need (for testing).
type dockerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	Ping(ctx context.Context) (types.Ping, error)
	Close() error
}

// Inventory reports every container known to the daemon, minus hidden ones.
//
// The client is created and pinged on the first poll. If either fails the
// inventory stays unavailable for the life of the process; later list
// failures are retried on the next poll.
type Inventory struct {
	newClient func() (dockerAPI, error)
	hidden    func() model.HiddenSet
	log       *zap.Logger

	once    sync.Once
	mu      sync.Mutex // guards cli and initErr once initialised
	cli     dockerAPI
	initErr error
}

var errClosed = hqerrors.New(hqerrors.ErrCollect, "Docker client closed", "")

// NewInventory creates an inventory using the environment's Docker settings.
// hidden is consulted on every poll so edits take effect without a restart.
func NewInventory(hidden func() model.HiddenSet, log *zap.Logger) *Inventory {
	return newInventory(func() (dockerAPI, error) {
		return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	}, hidden, log)
}

func newInventory(newClient func() (dockerAPI, error), hidden func() model.HiddenSet, log *zap.Logger) *Inventory {
	if hidden == nil {
		hidden = func() model.HiddenSet { return nil }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Inventory{newClient: newClient, hidden: hidden, log: log}
}

// ID implements collector.Source.
func (inv *Inventory) ID() model.SourceID { return model.SourceContainers }

// Poll implements collector.Source.
func (inv *Inventory) Poll(ctx context.Context) model.Report {
	return inv.Collect(ctx).Report(inv.ID())
}

// Collect lists containers sorted by name.
func (inv *Inventory) Collect(ctx context.Context) model.Result[model.ContainerInventory] {
	cli, err := inv.client(ctx)
	if err != nil {
		return model.Unavailable[model.ContainerInventory]("docker unavailable")
	}

	summaries, err := cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		if ctx.Err() != nil {
			return model.Unavailable[model.ContainerInventory]("timeout")
		}
		return model.Unavailable[model.ContainerInventory](fmt.Sprintf("list containers: %v", err))
	}

	return model.OK(buildInventory(summaries, inv.hidden()))
}

// InitErr returns the sticky initialisation error, if any.
func (inv *Inventory) InitErr() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.initErr
}

// Close releases the cached client. A Close during the first poll waits
// for initialisation to finish; after Close the inventory is unavailable.
func (inv *Inventory) Close() error {
	inv.once.Do(func() { inv.initErr = errClosed })

	inv.mu.Lock()
	defer inv.mu.Unlock()
	cli := inv.cli
	inv.cli = nil
	if inv.initErr == nil {
		inv.initErr = errClosed
	}
	if cli == nil {
		return nil
	}
	return cli.Close()
}

func (inv *Inventory) client(ctx context.Context) (dockerAPI, error) {
	inv.once.Do(func() {
		cli, err := inv.newClient()
		if err != nil {
			inv.initErr = hqerrors.WrapWithCode(err, hqerrors.ErrCollect,
				"Cannot create Docker client", "Check DOCKER_HOST and that the daemon is installed")
			inv.log.Warn("docker client unavailable, container inventory disabled", zap.Error(err))
			return
		}
		if _, err := cli.Ping(ctx); err != nil {
			_ = cli.Close()
			inv.initErr = hqerrors.WrapWithCode(err, hqerrors.ErrCollect,
				"Docker daemon did not answer", "Check that the dashboard user can reach the Docker socket")
			inv.log.Warn("docker ping failed, container inventory disabled", zap.Error(err))
			return
		}
		inv.cli = cli
	})

	inv.mu.Lock()
	defer inv.mu.Unlock()
	if inv.initErr != nil {
		return nil, inv.initErr
	}
	return inv.cli, nil
}

func buildInventory(summaries []container.Summary, hidden model.HiddenSet) model.ContainerInventory {
	inv := model.ContainerInventory{Containers: make([]model.Container, 0, len(summaries))}
	for _, s := range summaries {
		name := cleanContainerName(s.Names)
		if hidden.Contains(name) {
			inv.Hidden++
			continue
		}
		label := string(s.State)
		inv.Containers = append(inv.Containers, model.Container{
			Name:   name,
			Image:  s.Image,
			ID:     shortID(s.ID),
			State:  model.ClassifyContainerState(label),
			Label:  label,
			Status: s.Status,
		})
	}
	sort.Slice(inv.Containers, func(i, j int) bool {
		return inv.Containers[i].Name < inv.Containers[j].Name
	})
	return inv
}

// cleanContainerName strips the leading "/" from Docker container names.
func cleanContainerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

// shortID returns the first 12 chars of a container ID.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
