// Command validate checks every sensor profile (.yaml, .yml, .json) in a
// directory. It checks:
//   - YAML/JSON structure and required fields
//   - Grid dimensions and budget range
//   - Every sensor present with a positive cost and well-formed CPT
//   - Budget covers at least one survey with the cheapest sensor
//   - Each sensor's readings share one label set across distances
//   - Each sensor is informative (its distributions differ between distances)
package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/artifact-hunt/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Errors make the profile invalid; Warnings and Info are reported only.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// validateConfig loads and validates a single profile file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	config, err := engine.ParseGameConfig(data, engine.FormatFromPath(filePath))
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid %s: %v", engine.FormatFromPath(filePath), err))
		return result
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	sensors, err := config.SensorSet()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Playability
	if cheapest := sensors.CheapestCost(); config.Budget < cheapest {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Budget %d cannot pay for any survey (cheapest sensor costs %d)", config.Budget, cheapest))
	}

	maxDistance := config.Rows - 1 + config.Columns - 1
	for _, t := range engine.SensorTypes {
		spec := config.Sensors[t]
		result.Warnings = append(result.Warnings, checkLabels(t, spec.CPT)...)
		if !informative(spec.CPT, maxDistance) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s readings do not depend on distance; the sensor carries no information", t))
		}
	}

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Grid: %dx%d (max distance %d)", config.Rows, config.Columns, maxDistance),
		fmt.Sprintf("✓ Budget: %d", config.Budget),
	)
	for _, t := range engine.SensorTypes {
		spec := config.Sensors[t]
		result.Info = append(result.Info, fmt.Sprintf("✓ %s: cost %d, %s", t, spec.Cost, describeCPT(spec.CPT)))
	}

	return result
}

// checkLabels reports distances whose reading labels differ from the rest
func checkLabels(sensor engine.SensorType, cpt engine.CPT) []string {
	var warnings []string
	var reference []string
	referenceKey := ""

	keys := make([]string, 0, len(cpt.Buckets)+1)
	dists := make([]engine.Distribution, 0, len(cpt.Buckets)+1)
	for _, d := range cpt.Distances() {
		keys = append(keys, fmt.Sprint(d))
		dists = append(dists, cpt.Buckets[d])
	}
	if cpt.Default != nil {
		keys = append(keys, engine.DefaultKey)
		dists = append(dists, cpt.Default)
	}

	for i, dist := range dists {
		labels := dist.Labels()
		if reference == nil {
			reference, referenceKey = labels, keys[i]
			continue
		}
		if strings.Join(labels, ",") != strings.Join(reference, ",") {
			warnings = append(warnings, fmt.Sprintf("%s cpt[%s] readings %v differ from cpt[%s] readings %v",
				sensor, keys[i], labels, referenceKey, reference))
		}
	}
	return warnings
}

// informative reports whether any two reachable distances resolve to
// different distributions
func informative(cpt engine.CPT, maxDistance int) bool {
	first, err := cpt.Distribution(0)
	if err != nil {
		return false
	}
	for d := 1; d <= maxDistance; d++ {
		dist, err := cpt.Distribution(d)
		if err != nil {
			continue
		}
		if !sameDistribution(first, dist) {
			return true
		}
	}
	return false
}

func sameDistribution(a, b engine.Distribution) bool {
	if len(a) != len(b) {
		return false
	}
	for label, p := range a {
		q, ok := b[label]
		if !ok || math.Abs(p-q) > engine.ProbabilityEpsilon {
			return false
		}
	}
	return true
}

func describeCPT(cpt engine.CPT) string {
	dists := cpt.Distances()
	parts := make([]string, 0, len(dists))
	for _, d := range dists {
		parts = append(parts, fmt.Sprint(d))
	}
	desc := fmt.Sprintf("distances [%s]", strings.Join(parts, ","))
	if cpt.Default != nil {
		desc += " + default"
	}
	return desc
}

// profileFiles lists the profile files in dir, sorted by name
func profileFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// validateDir validates every profile in dir and writes a report to w.
// It returns false if any profile is invalid, or strict is set and any
// profile has warnings.
func validateDir(w io.Writer, dir string, strict bool) (bool, error) {
	files, err := profileFiles(dir)
	if err != nil {
		return false, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no profile files found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, e := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+e)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warning)
		}
		if strict && len(result.Warnings) > 0 {
			allValid = false
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid, nil
}

// main validates the profile directory and exits non-zero on failure
func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "Validate sensor profiles",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat warnings as failures",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := "../configs"
			if cmd.Args().Len() > 0 {
				dir = cmd.Args().First()
			}
			ok, err := validateDir(os.Stdout, dir, cmd.Bool("strict"))
			if err != nil {
				return err
			}
			if !ok {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
