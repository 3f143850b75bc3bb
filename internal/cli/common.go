package cli

import (
	"errors"

	"github.com/katalvlaran/spatialperm/internal/config"
	"github.com/katalvlaran/spatialperm/internal/dataset"
	"github.com/katalvlaran/spatialperm/internal/logger"
	"github.com/katalvlaran/spatialperm/neighbors"
	"github.com/katalvlaran/spatialperm/permute"
)

// load reads the dataset named on the command line.
func (a *app) load(path string) (*dataset.Dataset, error) {
	ds, err := dataset.Load(path, a.flags.labelKey)
	if err != nil {
		return nil, err
	}
	a.log.Info("dataset loaded", "path", path, "objects", ds.Len(), "boxes", ds.HasBoxes())
	return ds, nil
}

// neighborMapping runs the index the configuration selects and applies
// IgnoreSelf.
func (a *app) neighborMapping(ds *dataset.Dataset) (neighbors.Mapping, error) {
	nc := a.cfg.Neighbors
	opts := []neighbors.Option{
		neighbors.WithWorkers(a.cfg.Workers),
		neighbors.WithLogger(logger.WithComponent(a.log, "neighbors")),
		neighbors.WithMetrics(a.metrics),
	}

	mode := nc.Mode
	if mode == config.ModeAuto {
		mode = config.ModePoint
		if ds.HasBoxes() {
			mode = config.ModeRegion
		}
	}

	var (
		m   neighbors.Mapping
		err error
	)
	switch mode {
	case config.ModeRegion:
		if !ds.HasBoxes() {
			return nil, errors.New("region mode needs box input (minx,miny,maxx,maxy or polygons)")
		}
		q := neighbors.RegionQuery{Expand: nc.Expand, Scale: nc.Scale}
		m, err = neighbors.RegionNeighbors(ds.Boxes, q, opts...)
	default:
		m, err = neighbors.PointNeighbors(ds.Points, nc.Radius, opts...)
	}
	if err != nil {
		return nil, err
	}
	m = neighbors.Normalize(m, nc.IgnoreSelf)
	a.log.Info("neighbors computed", "mode", mode, "entries", m.Edges(), "symmetric", m.Symmetric())
	return m, nil
}

// permuteOptions translates the bootstrap configuration.
func (a *app) permuteOptions() ([]permute.Option, error) {
	method, err := permute.ParseMethod(a.cfg.Bootstrap.Method)
	if err != nil {
		return nil, err
	}
	return []permute.Option{
		permute.WithTimes(a.cfg.Bootstrap.Times),
		permute.WithPValue(a.cfg.Bootstrap.PValue),
		permute.WithMethod(method),
		permute.WithSeed(a.cfg.Bootstrap.Seed),
		permute.WithWorkers(a.cfg.Workers),
		permute.WithLogger(logger.WithComponent(a.log, "permute")),
		permute.WithMetrics(a.metrics),
	}, nil
}
