package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/lcalzada-xor/ghostfield/internal/geo"
	"github.com/lcalzada-xor/ghostfield/internal/roster"
)

func main() {
	wiglePath := flag.String("wigle", "", "Path to saved WiGLE API response (JSON)")
	outDir := flag.String("out", ".", "Directory for generated roster files")
	catalogPath := flag.String("catalog", "", "Path to survey catalog database (empty to skip)")
	lat := flag.Float64("lat", 52.3584, "Target latitude")
	lon := flag.Float64("lon", 4.8811, "Target longitude")
	perFile := flag.Int("per-file", 20, "Networks per roster file")
	flag.Parse()

	if *wiglePath == "" {
		log.Fatal("-wigle is required")
	}

	resp, err := roster.LoadWigle(*wiglePath)
	if err != nil {
		log.Fatalf("Failed to load WiGLE response: %v", err)
	}
	log.Printf("Loaded %d networks from %s", len(resp.Results), *wiglePath)

	target := geo.Location{Latitude: *lat, Longitude: *lon}
	files := roster.ConvertWigle(resp, target, *perFile)

	for i, f := range files {
		path := filepath.Join(*outDir, fmt.Sprintf("roster_%d.json", i+1))
		if err := roster.WriteFile(path, f); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("Wrote %s (%d networks)", path, len(f.Networks))
	}

	if *catalogPath != "" {
		catalog, err := roster.OpenCatalog(*catalogPath)
		if err != nil {
			log.Fatalf("Failed to open catalog: %v", err)
		}
		defer catalog.Close()

		total := 0
		for _, f := range files {
			if err := catalog.Upsert(context.Background(), f.Networks); err != nil {
				log.Fatalf("Failed to record networks: %v", err)
			}
			total += len(f.Networks)
		}
		log.Printf("Recorded %d networks in %s", total, *catalogPath)
	}
}
