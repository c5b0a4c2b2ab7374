// Package board holds the dashboard's process-wide state: config store,
// theme assets, collectors and the latest result of every source.
package board

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/collector"
	"github.com/kostyay/basementhq/internal/config"
	"github.com/kostyay/basementhq/internal/docker"
	"github.com/kostyay/basementhq/internal/metrics"
	"github.com/kostyay/basementhq/internal/model"
	"github.com/kostyay/basementhq/internal/rate"
	"github.com/kostyay/basementhq/internal/theme"
)

// State is constructed once per process.
type State struct {
	settings *config.Settings
	store    *config.Store
	assets   *theme.Assets
	resolver *theme.Resolver
	metrics  *metrics.Metrics
	log      *zap.Logger

	// Stateful collectors are kept for the life of the process; the
	// stateless HTTP collectors are rebuilt from the store on every cycle.
	host      *collector.Host
	network   *collector.Network
	inventory *docker.Inventory
	sources   func() []collector.Source

	mu       sync.RWMutex
	latest   map[model.SourceID]model.Report
	inflight map[model.SourceID]bool
}

type options struct {
	log     *zap.Logger
	metrics *metrics.Metrics
	env     config.Environment
}

// Option configures New.
type Option func(*options)

// WithLogger sets the root logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics records polls into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithEnvironment replaces the process environment the store mirrors into.
func WithEnvironment(env config.Environment) Option {
	return func(o *options) { o.env = env }
}

// New opens the store under settings.DataDir and wires the collectors.
func New(settings *config.Settings, opts ...Option) (*State, error) {
	o := options{log: zap.NewNop(), env: config.ProcessEnv()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = metrics.New(nil)
	}

	store, err := config.OpenStore(settings.StorePath(),
		config.WithEnvironment(o.env),
		config.WithLogger(o.log.Named("config")))
	if err != nil {
		return nil, err
	}

	assets := theme.NewAssets(settings.AssetDir())
	s := &State{
		settings: settings,
		store:    store,
		assets:   assets,
		resolver: theme.NewResolver(assets, o.log.Named("theme")),
		metrics:  o.metrics,
		log:      o.log.Named("board"),
		host:     collector.NewHost(o.log.Named("host")),
		network:  collector.NewNetwork(rate.NewMeter(), o.log.Named("network")),
		latest:   make(map[model.SourceID]model.Report),
		inflight: make(map[model.SourceID]bool),
	}
	s.inventory = docker.NewInventory(s.hiddenContainers, o.log.Named("docker"))
	s.sources = s.configuredSources
	return s, nil
}

// Store returns the config store.
func (s *State) Store() *config.Store { return s.store }

// Settings returns the process settings.
func (s *State) Settings() *config.Settings { return s.settings }

// Assets returns the uploaded asset store.
func (s *State) Assets() *theme.Assets { return s.assets }

// Metrics returns the metrics the board records into.
func (s *State) Metrics() *metrics.Metrics { return s.metrics }

// Theme resolves the current render parameters.
func (s *State) Theme() theme.RenderParameters {
	s.syncStore()
	return s.resolver.Resolve(s.store)
}

// syncStore picks up config edits written by another process, such as
// "basementhq config set" while the board is running.
func (s *State) syncStore() {
	if _, err := s.store.Reload(); err != nil {
		s.log.Warn("config reload failed", zap.Error(err))
	}
}

// SaveConfig stores entries as one batch, honouring the preserve_blank
// setting. It returns the keys that were written.
func (s *State) SaveConfig(entries []config.Entry) ([]string, error) {
	saved, err := s.store.SaveBatch(entries, s.settings.PreserveBlank)
	for range saved {
		s.metrics.ConfigWrite(nil)
	}
	if err != nil {
		s.metrics.ConfigWrite(err)
		s.log.Error("config save failed", zap.Strings("saved", saved), zap.Error(err))
	}
	return saved, err
}

// SaveAsset stores an uploaded logo, background or font.
func (s *State) SaveAsset(kind theme.AssetKind, filename string, r io.Reader) (string, error) {
	path, err := s.assets.Save(kind, filename, r)
	if err != nil {
		s.log.Warn("asset rejected", zap.String("kind", string(kind)), zap.String("file", filename), zap.Error(err))
		return "", err
	}
	s.log.Info("asset saved", zap.String("kind", string(kind)), zap.String("path", path))
	return path, nil
}

// Close releases the container runtime client.
func (s *State) Close() error {
	return s.inventory.Close()
}

// Sources returns the collectors for the current configuration in
// display order.
func (s *State) Sources() []collector.Source {
	s.syncStore()
	return s.sources()
}

func (s *State) configuredSources() []collector.Source {
	v := s.store
	srcs := []collector.Source{s.host, s.network}
	used := make(map[string]bool)
	for _, p := range []struct{ hostKey, labelKey string }{
		{config.KeyPingHost1, config.KeyPingLabel1},
		{config.KeyPingHost2, config.KeyPingLabel2},
	} {
		host := v.Value(p.hostKey)
		if host == "" {
			continue
		}
		label := uniqueLabel(v.Value(p.labelKey), host, used)
		srcs = append(srcs, collector.NewReachability(label, host))
	}
	srcs = append(srcs,
		collector.NewMedia(v.Value(config.KeyMediaURL), v.Value(config.KeyMediaAPIKey), nil),
		collector.NewFiltering(v.Value(config.KeyFilterURL), v.Value(config.KeyFilterUser), v.Value(config.KeyFilterPass), nil),
		collector.NewWeather(v.Value(config.KeyWeatherURL), v.Value(config.KeyLatitude), v.Value(config.KeyLongitude),
			defaultCoord(config.KeyLatitude), defaultCoord(config.KeyLongitude), nil, s.log),
		s.inventory,
	)
	return srcs
}

// uniqueLabel returns the label for a reachability check. An empty label
// falls back to the host; a label already taken falls back to the host and
// then gets a numeric suffix, so every check keeps its own SourceID.
func uniqueLabel(label, host string, used map[string]bool) string {
	if label == "" || used[label] {
		label = host
	}
	base := label
	for n := 2; used[label]; n++ {
		label = fmt.Sprintf("%s (%d)", base, n)
	}
	used[label] = true
	return label
}

func (s *State) hiddenContainers() model.HiddenSet {
	return model.ParseHiddenSet(s.store.Value(config.KeyHiddenContainers))
}

func defaultCoord(key string) float64 {
	f, _ := strconv.ParseFloat(config.Defaults[key], 64)
	return f
}

// Source returns the current collector with the given id.
func (s *State) Source(id model.SourceID) (collector.Source, bool) {
	for _, src := range s.Sources() {
		if src.ID() == id {
			return src, true
		}
	}
	return nil, false
}

// Entries returns the stored config entries in file order.
func (s *State) Entries() []config.Entry {
	s.syncStore()
	return s.store.Entries()
}
