package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/vango-dev/mvvm/internal/config"
	"github.com/vango-dev/mvvm/internal/errors"
	"github.com/vango-dev/mvvm/pkg/metrics"
	"github.com/vango-dev/mvvm/pkg/reactive"
	"github.com/vango-dev/mvvm/pkg/vm"
)

// env is the runtime assembled from mvvm.json and the global flags.
type env struct {
	cfg       *config.Config
	logger    *slog.Logger
	observer  *reactive.Observer
	watchOpts []reactive.WatcherOption
	registry  *prometheus.Registry
	flags     *globalFlags
}

func newEnv(flags *globalFlags, stderr io.Writer) (*env, error) {
	cfg, err := config.LoadOrDefault(flags.configDir)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:    cfg,
		logger: cfg.Logger(stderr),
		flags:  flags,
	}
	reactive.Debug = cfg.DebugConfig()

	obsOpts := cfg.ObserverOptions(e.logger)
	e.watchOpts = cfg.WatcherOptions(e.logger)
	if cfg.Metrics.Enabled || flags.metricsOut != "" {
		e.registry = prometheus.NewRegistry()
		rec := metrics.New(
			metrics.WithRegistry(e.registry),
			metrics.WithNamespace(cfg.Metrics.Namespace),
		)
		obsOpts = append(obsOpts, reactive.WithRecorder(rec))
		e.watchOpts = append(e.watchOpts, reactive.WithWatcherRecorder(rec))
	}
	e.observer = reactive.NewObserver(obsOpts...)
	return e, nil
}

// loadModel reads a YAML or JSON data file into a view model.
func (e *env) loadModel(path string) (*vm.VM, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E301").Wrap(err)
	}
	v, err := reactive.FromYAML(raw)
	if err != nil {
		return nil, errors.New("E301").WithDetail("Failed to decode " + path).Wrap(err)
	}
	data, ok := v.(*reactive.Object)
	if !ok || data.IsArray() {
		return nil, errors.New("E301").
			WithDetail(path + " must contain a mapping at the top level").
			WithSuggestion("Wrap the data in an object, e.g. {data: [...]}")
	}
	return vm.New(data, vm.WithObserver(e.observer))
}

// applySets writes each path=value assignment in order.
func (e *env) applySets(model *vm.VM, sets []string) error {
	for _, s := range sets {
		path, value, err := parseSet(s)
		if err != nil {
			return err
		}
		e.logger.Debug("mvvm: set", "path", path, "value", reactive.Text(value))
		if err := model.SetPath(path, value); err != nil {
			return err
		}
	}
	return nil
}

// parseSet splits "path=value" and decodes value as YAML, so numbers,
// booleans and flow mappings keep their type.
func parseSet(s string) (string, reactive.Value, error) {
	path, raw, ok := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return "", nil, errors.New("E303").
			WithDetail("got " + s).
			WithSuggestion("Use --set path=value, e.g. --set user.name=Bob")
	}
	if strings.TrimSpace(raw) == "" {
		return path, reactive.String(""), nil
	}
	v, err := reactive.FromYAML([]byte(raw))
	if err != nil {
		return "", nil, errors.New("E303").WithDetail("value of " + path).Wrap(err)
	}
	return path, v, nil
}

// writeMetrics dumps the registry in the Prometheus text format.
func (e *env) writeMetrics(stdout io.Writer) error {
	if e.registry == nil || e.flags.metricsOut == "" {
		return nil
	}
	families, err := e.registry.Gather()
	if err != nil {
		return err
	}

	w := stdout
	if e.flags.metricsOut != "-" {
		f, err := os.Create(e.flags.metricsOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
