package engine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PriorMode selects the belief the posterior starts from
type PriorMode string

const (
	// PriorUniform recomputes 1/(rows*columns) on every call
	PriorUniform PriorMode = "uniform"
	// PriorInitial uses the per-cell priors stored at grid construction
	PriorInitial PriorMode = "initial"
)

// BayesianEngine recomputes the posterior belief grid from an observation
// log. It keeps no incremental state between calls.
type BayesianEngine struct {
	grid  *Grid
	prior PriorMode
}

// NewBayesianEngine binds an engine to a grid
func NewBayesianEngine(grid *Grid, prior PriorMode) *BayesianEngine {
	if prior == "" {
		prior = PriorUniform
	}
	return &BayesianEngine{grid: grid, prior: prior}
}

// Prior returns a fresh prior belief grid
func (b *BayesianEngine) Prior() *mat.Dense {
	if b.prior == PriorInitial {
		return b.grid.InitialProbabilities()
	}
	return b.uniform()
}

func (b *BayesianEngine) uniform() *mat.Dense {
	rows, cols := b.grid.Rows(), b.grid.Columns()
	p := 1.0 / float64(rows*cols)
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = p
	}
	return mat.NewDense(rows, cols, data)
}

// Likelihood returns L[i,j] = P(reading | distance((i,j), observed cell))
func (b *BayesianEngine) Likelihood(obs Observation) (*mat.Dense, error) {
	sensor, err := b.grid.Sensors().Get(obs.Sensor)
	if err != nil {
		return nil, err
	}

	rows, cols := b.grid.Rows(), b.grid.Columns()
	likelihood := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d := ManhattanDistance(Position{Row: i, Col: j}, obs.Position)
			p, err := sensor.ConditionalProbability(d, obs.Reading)
			if err != nil {
				return nil, fmt.Errorf("likelihood at (%d,%d): %w", i, j, err)
			}
			likelihood.Set(i, j, p)
		}
	}
	return likelihood, nil
}

// ComputePosterior folds every logged observation into the prior, treating
// observations as conditionally independent given the artifact location,
// and normalizes the result. If every cell ends at zero the uniform
// distribution is returned instead.
func (b *BayesianEngine) ComputePosterior(log *ObservationLog) (*mat.Dense, error) {
	posterior := b.Prior()

	for _, obs := range log.All() {
		likelihood, err := b.Likelihood(obs)
		if err != nil {
			return nil, err
		}
		posterior.MulElem(posterior, likelihood)
	}

	total := mat.Sum(posterior)
	if total == 0 {
		return b.uniform(), nil
	}
	posterior.Apply(func(_, _ int, v float64) float64 {
		return v / total
	}, posterior)
	return posterior, nil
}
