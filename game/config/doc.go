// Package config provides sensor profile management for the Artifact Hunt game.
//
// The config package handles:
//   - Loading sensor profiles from YAML or JSON files
//   - Profile validation through the engine package
//   - Default profile selection
//   - Profile discovery, listing and saving
//
// Profile Format:
//
// A profile names the default grid size and budget and gives every sensor a
// cost and a conditional probability table keyed by Manhattan distance:
//
//	name: standard
//	rows: 10
//	columns: 10
//	budget: 100
//	sensors:
//	  VIS:
//	    cost: 1
//	    cpt:
//	      0: {SIGNS: 0.5, NOTHING: 0.5}
//	      default: {SIGNS: 0.1, NOTHING: 0.9}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := manager.LoadConfig("quick")
//	defaultProfile := manager.GetDefault()
//	profiles, err := manager.ListConfigs()
//
// When the directory has no standard profile the first valid file becomes
// the default, and an empty directory falls back to the built-in profile.
package config
