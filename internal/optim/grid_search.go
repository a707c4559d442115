package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/pacce/ventilation/internal/analysis"
	"github.com/pacce/ventilation/internal/config"
	"github.com/pacce/ventilation/internal/experiment"
	"github.com/pacce/ventilation/internal/sim"
)

// Objective scores a run; lower is better.
type Objective func(*sim.Result) float64

// Metric scores a run by one of its metrics.
func Metric(name string) Objective {
	return func(r *sim.Result) float64 {
		v, ok := r.Metrics[name]
		if !ok {
			return math.Inf(1)
		}
		return v
	}
}

// TrackingError scores how far the settled breaths stray from the setpoints
// of cfg: peak pressure for PCV, tidal volume (in cmH2O-equivalent through
// the lung elastance) for VCV, end-expiratory pressure for both. The first
// warmup breaths are ignored.
func TrackingError(cfg *config.Config, warmup int) Objective {
	return func(r *sim.Result) float64 {
		breaths := analysis.Breaths(r.Samples)
		st := analysis.Stats(breaths, warmup)
		if st.Count == 0 {
			return math.Inf(1)
		}
		cost := math.Abs(st.EndPressure.Mean - cfg.Settings.PEEP)
		switch cfg.Mode {
		case "pcv":
			cost += math.Abs(st.PeakPressure.Mean - cfg.Settings.Peak)
		case "vcv":
			e := cfg.Lung.Elastance
			if e <= 0 && cfg.Lung.Compliance > 0 {
				e = 1 / cfg.Lung.Compliance
			}
			cost += math.Abs(st.Tidal.Mean-cfg.Settings.Tidal) * e
		}
		return cost
	}
}

// Tunable gain names and the configuration field each sets.
var Params = map[string]func(*config.GainsConfig, float64){
	"kp":      func(g *config.GainsConfig, v float64) { g.Kp = v },
	"ki":      func(g *config.GainsConfig, v float64) { g.Ki = v },
	"insp_kp": func(g *config.GainsConfig, v float64) { g.InspKp = v },
	"insp_ki": func(g *config.GainsConfig, v float64) { g.InspKi = v },
}

// Point is one evaluated gain combination.
type Point struct {
	Params map[string]float64
	Score  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	points     []Point
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params but %d ranges", len(params), len(ranges))
	}
	for _, p := range params {
		if _, ok := Params[p]; !ok {
			return nil, fmt.Errorf("optim: unknown gain %q", p)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search runs base once per grid point with the gains overridden and
// returns the best point. Points whose run fails are skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective Objective) (map[string]float64, float64, error) {
	g.points = g.points[:0]

	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, objective, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("optim: no grid point completed")
	}

	log.WithFields(log.Fields{"points": len(g.points), "best": best}).Info("grid search complete")
	return bestParams, best, nil
}

// Points returns every evaluation of the last search, best first.
func (g *GridSearch) Points() []Point {
	out := append([]Point(nil), g.points...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := *base
		for k, v := range current {
			Params[k](&cfg.Gains, v)
		}

		point := Point{Params: current, Score: math.Inf(1)}
		exp := experiment.New(&cfg)
		if err := exp.Setup(); err != nil {
			point.Err = err
			g.points = append(g.points, point)
			return nil
		}
		result, err := exp.Run(ctx)
		if err != nil {
			point.Err = err
			g.points = append(g.points, point)
			return nil
		}

		point.Score = objective(result)
		if len(result.Errors) > 0 {
			point.Err = result.Errors[0]
			point.Score = math.Inf(1)
		}
		g.points = append(g.points, point)
		log.WithFields(log.Fields{"params": current, "score": point.Score}).Debug("grid point")

		if point.Score < *best {
			*best = point.Score
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
