package main

import (
	"flag"
	"os"

	"github.com/sakikimi/gpxhandle/internal/app"
	"github.com/sakikimi/gpxhandle/internal/logger"
)

func main() {
	flag.Parse()

	log := logger.NewConsoleLogger(logger.LevelFromEnv())
	application := app.NewApplication(log)

	// An initial file is optional; failing to load one given on the
	// command line is fatal.
	if path := flag.Arg(0); path != "" {
		if err := application.LoadInitial(path); err != nil {
			log.Error("Main", err, map[string]interface{}{"path": path})
			os.Exit(1)
		}
	}

	if err := application.Run(); err != nil {
		log.Error("Main", err, nil)
		os.Exit(1)
	}
}
