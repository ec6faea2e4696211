// Command analyze prints quick, human-readable diagnostics about the sensor
// profiles in a configs directory: per-distance reading entropy, how sharply
// each sensor separates near from far, and how much information one survey
// buys per budget point on a fresh grid.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"github.com/wricardo/artifact-hunt/game/config"
	"github.com/wricardo/artifact-hunt/game/engine"
)

// SensorReport summarizes one sensor of a profile
type SensorReport struct {
	Sensor         engine.SensorType
	Cost           int
	TopReading     string    // reading most indicative of the artifact
	DetectionRatio float64   // P(top | d=0) / P(top | farthest distance)
	Entropy        []float64 // bits, indexed by distance up to the grid maximum
	InfoCenter     float64   // bits gained surveying the center of a uniform grid
	InfoCorner     float64   // bits gained surveying corner (0,0)
	InfoPerCost    float64   // InfoCenter / Cost
}

// ProfileReport summarizes one profile
type ProfileReport struct {
	Name        string
	Rows        int
	Columns     int
	Budget      int
	MaxDistance int
	Sensors     []SensorReport
	Best        engine.SensorType // highest InfoPerCost
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	manager, err := config.NewManager(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	infos, err := manager.ListConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing profiles: %v\n", err)
		os.Exit(1)
	}

	for _, info := range infos {
		fmt.Printf("\n=== Analyzing %s ===\n", info.Filename)
		profile, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Printf("Error loading profile: %v\n", err)
			continue
		}
		report, err := analyzeConfig(profile)
		if err != nil {
			fmt.Printf("Error analyzing profile: %v\n", err)
			continue
		}
		printReport(os.Stdout, report)
	}
}

// analyzeConfig computes the diagnostics for a validated profile
func analyzeConfig(profile *engine.GameConfig) (*ProfileReport, error) {
	report := &ProfileReport{
		Name:        profile.Name,
		Rows:        profile.Rows,
		Columns:     profile.Columns,
		Budget:      profile.Budget,
		MaxDistance: profile.Rows - 1 + profile.Columns - 1,
	}

	center := engine.Position{Row: profile.Rows / 2, Col: profile.Columns / 2}
	corner := engine.Position{}

	for _, t := range engine.SensorTypes {
		spec, ok := profile.Sensors[t]
		if !ok {
			return nil, fmt.Errorf("%w: %s missing from %s", engine.ErrUnknownSensor, t, profile.Name)
		}

		sr := SensorReport{Sensor: t, Cost: spec.Cost}

		for d := 0; d <= report.MaxDistance; d++ {
			dist, err := spec.CPT.Distribution(d)
			if err != nil {
				return nil, fmt.Errorf("%s distance %d: %w", t, d, err)
			}
			sr.Entropy = append(sr.Entropy, entropyBits(dist))
		}

		near, _ := spec.CPT.Distribution(0)
		far, _ := spec.CPT.Distribution(report.MaxDistance)
		sr.TopReading, sr.DetectionRatio = signatureReading(near, far)

		var err error
		if sr.InfoCenter, err = mutualInformation(spec.CPT, profile.Rows, profile.Columns, center); err != nil {
			return nil, err
		}
		if sr.InfoCorner, err = mutualInformation(spec.CPT, profile.Rows, profile.Columns, corner); err != nil {
			return nil, err
		}
		if spec.Cost > 0 {
			sr.InfoPerCost = sr.InfoCenter / float64(spec.Cost)
		}

		report.Sensors = append(report.Sensors, sr)
	}

	best := report.Sensors[0]
	for _, sr := range report.Sensors[1:] {
		if sr.InfoPerCost > best.InfoPerCost {
			best = sr
		}
	}
	report.Best = best.Sensor

	return report, nil
}

// entropyBits is the Shannon entropy of a reading distribution in bits
func entropyBits(d engine.Distribution) float64 {
	labels := d.Labels()
	p := make([]float64, len(labels))
	for i, label := range labels {
		p[i] = d[label]
	}
	if h := stat.Entropy(p) / math.Ln2; h > 0 {
		return h
	}
	return 0
}

// signatureReading is the near reading that is most over-represented next to
// the artifact compared to the farthest cell; ties go to the first label
func signatureReading(near, far engine.Distribution) (string, float64) {
	best := ""
	bestRatio := -1.0
	for _, label := range near.Labels() {
		if r := ratio(near[label], far[label]); r > bestRatio {
			best, bestRatio = label, r
		}
	}
	return best, bestRatio
}

func ratio(near, far float64) float64 {
	if far == 0 {
		if near == 0 {
			return 1
		}
		return math.Inf(1)
	}
	return near / far
}

// mutualInformation is I(reading; location) in bits for one survey at pos
// under a uniform prior over the grid: H(R) - H(R | X).
func mutualInformation(cpt engine.CPT, rows, cols int, pos engine.Position) (float64, error) {
	n := float64(rows * cols)
	marginal := map[string]float64{}
	conditional := 0.0

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d := engine.ManhattanDistance(engine.Position{Row: i, Col: j}, pos)
			dist, err := cpt.Distribution(d)
			if err != nil {
				return 0, err
			}
			conditional += entropyBits(dist) / n
			for label, p := range dist {
				marginal[label] += p / n
			}
		}
	}

	info := entropyBits(engine.Distribution(marginal)) - conditional
	if info < 0 {
		// rounding
		info = 0
	}
	return info, nil
}

// printReport writes a report as aligned text
func printReport(w io.Writer, report *ProfileReport) {
	fmt.Fprintf(w, "Name: %s\n", report.Name)
	fmt.Fprintf(w, "Grid: %dx%d (max distance %d)\n", report.Rows, report.Columns, report.MaxDistance)
	fmt.Fprintf(w, "Budget: %d\n", report.Budget)
	fmt.Fprintf(w, "Prior entropy: %.3f bits\n", math.Log2(float64(report.Rows*report.Columns)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SENSOR\tCOST\tTOP\tRATIO\tINFO(center)\tINFO(corner)\tINFO/COST\tMAX SURVEYS")
	for _, sr := range report.Sensors {
		surveys := 0
		if sr.Cost > 0 {
			surveys = report.Budget / sr.Cost
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%.3f\t%.3f\t%.4f\t%d\n",
			sr.Sensor, sr.Cost, sr.TopReading, formatRatio(sr.DetectionRatio),
			sr.InfoCenter, sr.InfoCorner, sr.InfoPerCost, surveys)
	}
	tw.Flush()

	fmt.Fprintln(w, "Entropy by distance (bits):")
	for _, sr := range report.Sensors {
		parts := make([]string, len(sr.Entropy))
		for d, h := range sr.Entropy {
			parts[d] = fmt.Sprintf("%.2f", h)
		}
		fmt.Fprintf(w, "  %s: %s\n", sr.Sensor, strings.Join(parts, " "))
	}

	ranked := sortedSensors(report)
	names := make([]string, len(ranked))
	for i, sr := range ranked {
		names[i] = string(sr.Sensor)
	}
	fmt.Fprintf(w, "Ranking by information per cost: %s\n", strings.Join(names, " > "))
}

func formatRatio(r float64) string {
	if math.IsInf(r, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", r)
}

// sortedSensors orders sensor reports by information per cost, best first
func sortedSensors(report *ProfileReport) []SensorReport {
	out := append([]SensorReport(nil), report.Sensors...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InfoPerCost > out[j].InfoPerCost
	})
	return out
}
