package engine

import "sort"

// Observation is one recorded sensor reading at one cell
type Observation struct {
	Position Position   `json:"position"`
	Sensor   SensorType `json:"sensor"`
	Reading  string     `json:"reading"`
}

// ObservationLog keeps the latest reading per (cell, sensor) pair.
// Recording the same pair again replaces the earlier reading.
type ObservationLog struct {
	entries map[Position]map[SensorType]string
}

// NewObservationLog creates an empty log
func NewObservationLog() *ObservationLog {
	return &ObservationLog{entries: make(map[Position]map[SensorType]string)}
}

// Record stores a reading, overwriting any previous one for the pair
func (l *ObservationLog) Record(pos Position, sensor SensorType, reading string) {
	readings, ok := l.entries[pos]
	if !ok {
		readings = make(map[SensorType]string, len(SensorTypes))
		l.entries[pos] = readings
	}
	readings[sensor] = reading
}

// Reading returns the latest reading for the pair
func (l *ObservationLog) Reading(pos Position, sensor SensorType) (string, bool) {
	readings, ok := l.entries[pos]
	if !ok {
		return "", false
	}
	reading, ok := readings[sensor]
	return reading, ok
}

// Remove drops the reading for the pair if present
func (l *ObservationLog) Remove(pos Position, sensor SensorType) {
	readings, ok := l.entries[pos]
	if !ok {
		return
	}
	delete(readings, sensor)
	if len(readings) == 0 {
		delete(l.entries, pos)
	}
}

// All returns every observation ordered by row, column, then sensor
func (l *ObservationLog) All() []Observation {
	out := make([]Observation, 0, l.Len())
	for pos, readings := range l.entries {
		for sensor, reading := range readings {
			out = append(out, Observation{Position: pos, Sensor: sensor, Reading: reading})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Position.Row != b.Position.Row {
			return a.Position.Row < b.Position.Row
		}
		if a.Position.Col != b.Position.Col {
			return a.Position.Col < b.Position.Col
		}
		return a.Sensor < b.Sensor
	})
	return out
}

// Len returns the number of (cell, sensor) pairs recorded
func (l *ObservationLog) Len() int {
	n := 0
	for _, readings := range l.entries {
		n += len(readings)
	}
	return n
}

// Clear removes every observation
func (l *ObservationLog) Clear() {
	l.entries = make(map[Position]map[SensorType]string)
}
