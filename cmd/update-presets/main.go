package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"hydro-intrinsic/internal/data"
)

// update-presets seeds or refreshes the on-disk plant preset catalog with
// the hardcoded default presets (no external API to query for this domain
// — the teacher's update-locations fetched location metadata from Grid
// Status; here the catalog is static, sourced from the original Python
// module's PSWLimmern/Hongrin/PSWGoldisthal constants).
func main() {
	outputPath := flag.String("output", "", "Output file path (default: data.DefaultPresetsPath())")
	seedFile := flag.String("seed", "", "Optional path to an existing preset catalog to merge custom presets from")
	flag.Parse()

	path := *outputPath
	if path == "" {
		path = data.DefaultPresetsPath()
	}

	presets := data.DefaultPresets()

	if *seedFile != "" {
		existing, err := data.LoadPresets(*seedFile)
		if err != nil {
			log.Fatalf("failed to load seed catalog: %v", err)
		}
		seen := make(map[string]bool, len(presets))
		for _, p := range presets {
			seen[p.Name] = true
		}
		for _, p := range existing.Presets {
			if !seen[p.Name] {
				presets = append(presets, p)
				seen[p.Name] = true
			}
		}
	}

	list := &data.PresetList{
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Presets:   presets,
	}

	if err := data.SavePresets(list, path); err != nil {
		log.Fatalf("failed to save preset catalog: %v", err)
	}

	fmt.Printf("Wrote %d presets to %s\n", len(presets), path)
}
