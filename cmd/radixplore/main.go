package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/iKunal-Singh/radixplore-pipeline/internal/tagger"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/annotate"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/config"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/extract"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/geocode"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/locate"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/records"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Run configuration YAML (required)")
		skipTrain  = flag.Bool("skip-train", false, "Reuse the already-trained model")
	)
	flag.Parse()

	if *configPath == "" {
		log.Fatal("--config required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	ctx := context.Background()
	log.Println("--- Starting RadiXplore intelligence pipeline ---")

	// Step 1: load annotations and build the training set.
	annRecords, err := annotate.LoadRecords(cfg.Annotations)
	if err != nil {
		log.Fatal("Failed to load annotations: ", err)
	}
	examples, anomalies := radixplore.BuildTrainingSet(annRecords)
	if anomalies > 0 {
		log.Printf("Warning: %d token alignment anomalies in training data", anomalies)
	}
	if len(examples) == 0 {
		log.Fatal("No training examples could be built from annotations")
	}
	if cfg.Tagger.TrainingSet != "" {
		if err := tagger.ExportTrainingSet(cfg.Tagger.TrainingSet, examples); err != nil {
			log.Fatal("Failed to export training set: ", err)
		}
	}

	// Step 2: assemble collaborators.
	taggerClient := &tagger.Client{BaseURL: cfg.Tagger.BaseURL}

	geocodeOpts := []geocode.Option{geocode.WithBaseURL(cfg.Geocoder.BaseURL)}
	if cfg.Geocoder.CachePath != "" {
		cache, err := sqlite.Open(ctx, cfg.Geocoder.CachePath)
		if err != nil {
			log.Fatal("Failed to open geocode cache: ", err)
		}
		defer cache.Close()
		geocodeOpts = append(geocodeOpts, geocode.WithCache(cache))
	}
	geocoder := geocode.NewClient(cfg.Geocoder.UserAgent, geocodeOpts...)

	extractor := locate.NewExtractor()
	for _, word := range cfg.ExtraStopwords {
		extractor.AddStopword(word)
	}

	pipeline := radixplore.New(radixplore.Options{
		Tagger:    taggerClient,
		Geocoder:  geocoder,
		Extractor: extractor,
	})
	log.Printf("Run %s", pipeline.RunID())

	// Step 3: train the tagger.
	if *skipTrain {
		log.Println("Skipping training, reusing existing model")
	} else if err := pipeline.Train(ctx, examples); err != nil {
		log.Fatal("Training failed: ", err)
	}

	// Step 4: tag documents and collect mentions.
	sources := loadSources(cfg.DataDir)
	if len(sources) == 0 {
		log.Fatalf("No document files found in %s", cfg.DataDir)
	}

	nerOut, err := records.NewWriter(cfg.NEROutput)
	if err != nil {
		log.Fatal("Failed to open NER output: ", err)
	}
	total := 0
	for _, src := range sources {
		log.Printf("Processing %s...", src.Name())
		n, err := pipeline.GenerateMentions(ctx, src, nerOut)
		if err != nil {
			log.Fatal("NER output generation failed: ", err)
		}
		total += n
	}
	log.Printf("Found %d project mentions", total)

	// Step 5: geolocate.
	mentions, err := records.LoadMentions(cfg.NEROutput)
	if err != nil {
		log.Fatal("Failed to read mentions: ", err)
	}
	finalOut, err := records.NewWriter(cfg.FinalOutput)
	if err != nil {
		log.Fatal("Failed to open final output: ", err)
	}
	written, err := pipeline.Geolocate(ctx, mentions, finalOut)
	if err != nil {
		log.Fatal("Geolocation failed: ", err)
	}
	log.Printf("Wrote %d enriched records to %s", written, cfg.FinalOutput)

	printPreview(cfg.FinalOutput, 5)
	log.Println("--- Pipeline complete ---")
}

// loadSources collects a source per supported file in the data directory,
// skipping annotation JSON and anything without a text source.
func loadSources(dir string) []extract.Source {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatal("Failed to list data directory: ", err)
	}

	var sources []extract.Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src, err := extract.FromPath(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Skipping %s: no text source", entry.Name())
			continue
		}
		sources = append(sources, src)
	}
	return sources
}

// printPreview echoes the first lines of the final output for a quick
// sanity check.
func printPreview(path string, n int) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	log.Printf("First %d entries in %s:", n, filepath.Base(path))
	scanner := bufio.NewScanner(f)
	for i := 0; i < n && scanner.Scan(); i++ {
		log.Println(scanner.Text())
	}
}
