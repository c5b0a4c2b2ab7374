package board

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/collector"
	"github.com/kostyay/basementhq/internal/model"
)

// Group selects sources by poll cadence.
type Group int

const (
	GroupFast       Group = iota // every fast_interval
	GroupContainers              // every container_interval
)

// GroupOf returns the cadence group of a source.
func GroupOf(id model.SourceID) Group {
	if id == model.SourceContainers {
		return GroupContainers
	}
	return GroupFast
}

// SourcesIn returns the current sources of one group in display order.
func (s *State) SourcesIn(g Group) []collector.Source {
	var out []collector.Source
	for _, src := range s.Sources() {
		if GroupOf(src.ID()) == g {
			out = append(out, src)
		}
	}
	return out
}

// PollOne polls src under its timeout and records the result.
func (s *State) PollOne(ctx context.Context, src collector.Source) model.Report {
	start := time.Now()
	rep := collector.Run(ctx, src, s.log)
	s.metrics.Observe(rep, time.Since(start))

	s.mu.Lock()
	s.latest[rep.Source] = rep
	s.mu.Unlock()
	return rep
}

// TryPoll is PollOne unless a poll of the same source is still running,
// in which case it returns false without polling. A slow source therefore
// only delays its own next tick.
func (s *State) TryPoll(ctx context.Context, src collector.Source) (model.Report, bool) {
	id := src.ID()
	s.mu.Lock()
	if s.inflight[id] {
		s.mu.Unlock()
		s.log.Debug("poll skipped, previous still running", zap.String("source", string(id)))
		return model.Report{}, false
	}
	s.inflight[id] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}()
	return s.PollOne(ctx, src), true
}

// PollAll polls every current source concurrently and returns the reports
// in display order.
func (s *State) PollAll(ctx context.Context) []model.Report {
	srcs := s.Sources()
	reports := make([]model.Report, len(srcs))

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src collector.Source) {
			defer wg.Done()
			reports[i] = s.PollOne(ctx, src)
		}(i, src)
	}
	wg.Wait()
	return reports
}

// Run polls every source on its cadence until ctx is cancelled. Each poll
// runs in its own goroutine and fans in to the latest-results map.
func (s *State) Run(ctx context.Context) error {
	fast := time.NewTicker(s.settings.FastInterval)
	defer fast.Stop()
	slow := time.NewTicker(s.settings.ContainerInterval)
	defer slow.Stop()

	var wg sync.WaitGroup
	dispatch := func(g Group) {
		for _, src := range s.SourcesIn(g) {
			wg.Add(1)
			go func(src collector.Source) {
				defer wg.Done()
				s.TryPoll(ctx, src)
			}(src)
		}
	}

	s.log.Info("polling started",
		zap.Duration("fast_interval", s.settings.FastInterval),
		zap.Duration("container_interval", s.settings.ContainerInterval))

	dispatch(GroupFast)
	dispatch(GroupContainers)
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			s.log.Info("polling stopped")
			return nil
		case <-fast.C:
			dispatch(GroupFast)
		case <-slow.C:
			dispatch(GroupContainers)
		}
	}
}

// Latest returns the most recent report of every current source that has
// been polled at least once, in display order.
func (s *State) Latest() []model.Report {
	srcs := s.Sources()

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Report, 0, len(srcs))
	for _, src := range srcs {
		if rep, ok := s.latest[src.ID()]; ok {
			out = append(out, rep)
		}
	}
	return out
}

// LatestFor returns the most recent report of one source.
func (s *State) LatestFor(id model.SourceID) (model.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rep, ok := s.latest[id]
	return rep, ok
}
