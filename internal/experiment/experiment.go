package experiment

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/circsim/internal/analysis"
	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/integrators"
	"github.com/san-kum/circsim/internal/storage"
)

// Experiment runs the configured simulations and writes one CSV each.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	store    *storage.Store
	stdout   io.Writer
}

type Option func(*Experiment)

func WithRegistry(r *Registry) Option { return func(e *Experiment) { e.registry = r } }

// WithStore archives every successful run.
func WithStore(st *storage.Store) Option { return func(e *Experiment) { e.store = st } }

// WithStdout redirects status lines.
func WithStdout(w io.Writer) Option { return func(e *Experiment) { e.stdout = w } }

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		stdout:   os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every simulation. Sequential runs go in configuration order
// and stop at the first failure, leaving later simulations unrun. Results of
// the simulations that finished are returned with the error.
func (e *Experiment) Run(ctx context.Context) ([]*dynamo.Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.cfg.Parallel {
		return e.runParallel()
	}

	results := make([]*dynamo.Result, 0, len(e.cfg.Simulations))
	for _, sim := range e.cfg.Simulations {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		fmt.Fprintf(e.stdout, "running %s simulation...\n", sim.Name)
		res, err := e.RunOne(sim)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Experiment) runParallel() ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(e.cfg.Simulations))

	var g errgroup.Group
	for i, sim := range e.cfg.Simulations {
		fmt.Fprintf(e.stdout, "running %s simulation...\n", sim.Name)
		i, sim := i, sim
		g.Go(func() error {
			res, err := e.RunOne(sim)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// RunOne integrates sim, streaming samples to its CSV file. The file is
// closed on every path; a failed close is reported against the last step.
func (e *Experiment) RunOne(sim config.Simulation) (res *dynamo.Result, err error) {
	c, err := e.registry.Build(sim)
	if err != nil {
		return nil, err
	}

	euler := integrators.NewEuler()
	for _, m := range e.registry.DefaultMetrics(c, e.cfg.StabilityBound) {
		euler.AddMetric(m)
	}

	path := filepath.Join(e.cfg.OutputDir, sim.Output)
	sink, err := storage.CreateCSV(path)
	if err != nil {
		return nil, &dynamo.SimulationError{Name: sim.Name, Wrapped: err}
	}
	defer func() {
		cerr := sink.Close()
		if cerr == nil || err != nil {
			return
		}
		se := &dynamo.SimulationError{Name: sim.Name, Step: max(sink.Records()-1, 0), Wrapped: cerr}
		if res != nil && res.Series.Len() > 0 {
			se.Time = res.Series.Times[res.Series.Len()-1]
		}
		err = se
	}()

	cfg := sim.RunConfig()
	res, err = euler.Run(c, cfg, sink)
	if err != nil {
		return res, err
	}

	if !analysis.Finite(res.Series.Values) {
		logrus.Warnf("%s: output contains non-finite values; dt=%v is outside the stable range", sim.Name, sim.Dt)
	}
	logrus.Infof("%s: %d samples written to %s", sim.Name, res.Series.Len(), path)

	if e.store != nil {
		runID, serr := e.store.Save(sim.Kind, cfg, Params(c), res)
		if serr != nil {
			return res, fmt.Errorf("archive %s: %w", sim.Name, serr)
		}
		logrus.Infof("%s: archived as %s", sim.Name, runID)
	}

	return res, nil
}

// Simulate integrates sim without writing anything.
func (e *Experiment) Simulate(sim config.Simulation, observers ...dynamo.Observer) (*dynamo.Result, dynamo.Circuit, error) {
	if err := sim.Validate(); err != nil {
		return nil, nil, err
	}
	c, err := e.registry.Build(sim)
	if err != nil {
		return nil, nil, err
	}

	euler := integrators.NewEuler()
	for _, m := range e.registry.DefaultMetrics(c, e.cfg.StabilityBound) {
		euler.AddMetric(m)
	}
	for _, o := range observers {
		euler.AddObserver(o)
	}

	res, err := euler.Run(c, sim.RunConfig())
	return res, c, err
}
