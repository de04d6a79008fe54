package main

import (
	"flag"
	"log"

	"github.com/olivierh59500/plexus-field/config"
)

// Command-line flags
var (
	// settingsFlags carries -config, -seed, -particles, -width, -height,
	// -tps and -dust.
	settingsFlags = config.RegisterFlags(flag.CommandLine, true)

	// snapshotFlag is where the S key writes the current frame as JSON.
	snapshotFlag = flag.String("snapshot", "snapshot.json", "file written by the S key")
)

// loadSettings merges the config file and the explicitly set flags
func loadSettings() (config.File, error) {
	settings, err := settingsFlags.Settings()
	if err != nil {
		return config.File{}, err
	}
	if settingsFlags.Path != "" {
		log.Printf("settings loaded from %s", settingsFlags.Path)
	}
	return settings, nil
}
