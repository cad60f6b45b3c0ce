package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rs/zerolog/log"

	"github.com/rawbytedev/socow/internal/logging"
	"github.com/rawbytedev/socow/internal/workload"
)

func main() {
	configPath := flag.String("config", "", "workload file (.toml, .yaml)")
	replay := flag.String("replay", "", "replay ops from a trace file instead of generating them")
	record := flag.String("record", "", "write the ops to a trace file (overrides the config trace path)")
	memprofile := flag.String("memprofile", "", "write a heap profile after the run")
	flag.Parse()

	logger := logging.InitLogger("socow", logging.ProfileRuntime)

	cfg := workload.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = workload.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load workload config")
		}
		log.Info().Str("path", *configPath).Msg("loaded workload config")
	}

	var ops []workload.Op
	if *replay != "" {
		var err error
		ops, err = workload.LoadTrace(*replay)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load trace")
		}
		log.Info().Str("path", *replay).Int("ops", len(ops)).Msg("replaying trace")
	} else {
		ops = workload.Generate(cfg)
	}

	tracePath := cfg.Trace
	if *record != "" {
		tracePath = *record
	}
	if tracePath != "" && *replay == "" {
		if err := workload.SaveTrace(tracePath, ops, cfg.Compress); err != nil {
			log.Fatal().Err(err).Msg("failed to record trace")
		}
		log.Info().Str("path", tracePath).Bool("compressed", cfg.Compress).Msg("recorded trace")
	}

	if *memprofile != "" {
		runtime.MemProfileRate = 1
	}
	report, err := workload.Run(ops, cfg.Pool, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("workload failed")
	}
	log.Info().Object("report", report).Msg("workload passed")

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create heap profile")
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("failed to write heap profile")
		}
	}
}
