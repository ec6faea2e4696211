package engine

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Grid is the dig site: a fixed rectangle of cells with one hidden artifact
type Grid struct {
	rows     int
	columns  int
	cells    [][]Cell
	artifact Position
	sensors  SensorSet
}

// NewGrid allocates the cells and places the artifact using rng
func NewGrid(rows, columns int, rng *rand.Rand, sensors SensorSet) (*Grid, error) {
	if err := validateDimensions(rows, columns); err != nil {
		return nil, err
	}

	g := &Grid{
		rows:    rows,
		columns: columns,
		cells:   make([][]Cell, rows),
		sensors: sensors,
	}

	p0 := 1.0 / float64(rows*columns)
	for i := range g.cells {
		g.cells[i] = make([]Cell, columns)
		for j := range g.cells[i] {
			g.cells[i][j].Position = Position{Row: i, Col: j}
			g.cells[i][j].setInitialState(p0)
		}
	}

	// Row first, then column: the draw order fixes placement for a seed
	g.artifact = Position{Row: rng.Intn(rows), Col: rng.Intn(columns)}
	return g, nil
}

func validateDimensions(rows, columns int) error {
	if rows < MinGridSize || columns < MinGridSize {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrInvalidDimensions, rows, columns, MinGridSize, MinGridSize)
	}
	if rows > MaxGridSize || columns > MaxGridSize {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrInvalidDimensions, rows, columns, MaxGridSize, MaxGridSize)
	}
	return nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of columns
func (g *Grid) Columns() int { return g.columns }

// Sensors returns the sensor models bound to this grid
func (g *Grid) Sensors() SensorSet { return g.sensors }

// Contains reports whether pos lies on the grid
func (g *Grid) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.columns
}

func (g *Grid) checkBounds(pos Position) error {
	if !g.Contains(pos) {
		return fmt.Errorf("%w: %s on a %dx%d grid", ErrOutOfBounds, pos, g.rows, g.columns)
	}
	return nil
}

// CellAt returns a copy of the cell at pos
func (g *Grid) CellAt(pos Position) (Cell, error) {
	if err := g.checkBounds(pos); err != nil {
		return Cell{}, err
	}
	c := g.cells[pos.Row][pos.Col]
	status := make(map[SensorType]string, len(c.Status))
	for k, v := range c.Status {
		status[k] = v
	}
	c.Status = status
	return c, nil
}

// Probabilities returns a copy of the current belief grid
func (g *Grid) Probabilities() *mat.Dense {
	m := mat.NewDense(g.rows, g.columns, nil)
	for i := range g.cells {
		for j := range g.cells[i] {
			m.Set(i, j, g.cells[i][j].Probability)
		}
	}
	return m
}

// InitialProbabilities returns the per-cell priors fixed at construction
func (g *Grid) InitialProbabilities() *mat.Dense {
	m := mat.NewDense(g.rows, g.columns, nil)
	for i := range g.cells {
		for j := range g.cells[i] {
			m.Set(i, j, g.cells[i][j].InitialProbability)
		}
	}
	return m
}

// SetProbabilities overwrites every cell belief. Nothing is written unless
// every value is a valid probability.
func (g *Grid) SetProbabilities(m *mat.Dense) error {
	r, c := m.Dims()
	if r != g.rows || c != g.columns {
		return fmt.Errorf("%w: belief grid is %dx%d, want %dx%d", ErrInvalidDimensions, r, c, g.rows, g.columns)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if p := m.At(i, j); p < 0 || p > 1 {
				return fmt.Errorf("%w: %v at (%d,%d)", ErrProbabilityOutOfRange, p, i, j)
			}
		}
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			// Range already checked above
			_ = g.cells[i][j].SetProbability(m.At(i, j))
		}
	}
	return nil
}

// EvaluateSensor samples a reading for the sensor at pos given the true
// artifact location and records it on that cell only.
func (g *Grid) EvaluateSensor(pos Position, sensorType SensorType, rng *rand.Rand) (string, error) {
	if err := g.checkBounds(pos); err != nil {
		return "", err
	}
	sensor, err := g.sensors.Get(sensorType)
	if err != nil {
		return "", err
	}

	reading, err := sensor.SampleReading(ManhattanDistance(pos, g.artifact), rng)
	if err != nil {
		return "", err
	}
	g.cells[pos.Row][pos.Col].Status[sensorType] = reading
	return reading, nil
}

// restoreStatus puts back a cell status entry; an empty reading clears it
func (g *Grid) restoreStatus(pos Position, sensorType SensorType, reading string, had bool) {
	if had {
		g.cells[pos.Row][pos.Col].Status[sensorType] = reading
		return
	}
	delete(g.cells[pos.Row][pos.Col].Status, sensorType)
}

// isArtifact reports whether pos is the hidden artifact location
func (g *Grid) isArtifact(pos Position) bool {
	return pos == g.artifact
}
