package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	osmtoloop "github.com/urban-loopworks/osm-to-loop"
	"github.com/urban-loopworks/osm-to-loop/artifact"
	"github.com/urban-loopworks/osm-to-loop/config"
	"github.com/urban-loopworks/osm-to-loop/internal"
	"github.com/urban-loopworks/osm-to-loop/overpass"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to YAML configuration")
	out := flag.String("out", "", "artifact output path (overrides config)")
	cachePath := flag.String("cache", "", "overpass snapshot path (overrides config)")
	refresh := flag.Bool("refresh", false, "force a network fetch even when the snapshot exists")
	svgPath := flag.String("svg", "", "also write a debug SVG preview to this path")
	geojsonPath := flag.String("geojson", "", "also write a debug GeoJSON dump to this path")
	report := flag.Bool("report", false, "print the quality report as JSON on stdout")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	// Optional local overrides; absence is not an error.
	_ = godotenv.Load()

	log, err := internal.NewLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if ep := os.Getenv("OVERPASS_ENDPOINT"); ep != "" {
		cfg.Overpass.Endpoint = ep
	}
	if *out != "" {
		cfg.Artifact.OutputPath = *out
	}
	if *cachePath != "" {
		cfg.Overpass.CachePath = *cachePath
	}

	timeout := time.Duration(cfg.Overpass.TimeoutMS) * time.Millisecond
	client := overpass.NewClient(cfg.Overpass.Endpoint, timeout, cfg.Overpass.MaxRetries, log)
	query := overpass.BuildQuery(cfg.BBox, cfg.RoadClasses, timeout)
	src := overpass.NewCachedSource(client, query, cfg.Overpass.CachePath, *refresh, log)

	res, err := osmtoloop.NewPipeline(cfg, src, log).Run(context.Background())
	if err != nil {
		log.Fatal("pipeline failed", zap.Error(err))
	}

	if err := res.Artifact.WriteFile(cfg.Artifact.OutputPath); err != nil {
		log.Fatal("write artifact", zap.Error(err))
	}
	log.Info("wrote artifact", zap.String("path", cfg.Artifact.OutputPath))

	if *svgPath != "" {
		if err := os.WriteFile(*svgPath, res.Artifact.SVG(), 0o644); err != nil {
			log.Fatal("write svg", zap.Error(err))
		}
		log.Info("wrote svg preview", zap.String("path", *svgPath))
	}
	if *geojsonPath != "" {
		buf, err := artifact.GeoJSON(res.GeoVerts, res.Candidates)
		if err != nil {
			log.Fatal("build geojson", zap.Error(err))
		}
		if err := os.WriteFile(*geojsonPath, buf, 0o644); err != nil {
			log.Fatal("write geojson", zap.Error(err))
		}
		log.Info("wrote geojson dump", zap.String("path", *geojsonPath))
	}
	if *report {
		fmt.Println(string(res.Report.JSON()))
	}
}
