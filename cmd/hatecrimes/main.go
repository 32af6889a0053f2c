package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"hatecrimes/internal"
	"hatecrimes/internal/catalog"
	"hatecrimes/internal/config"
	"hatecrimes/internal/logger"
	"hatecrimes/internal/pipeline"
	"hatecrimes/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	must(err)
	defer log.Sync()

	cmd := os.Args[1]
	switch cmd {
	case "catalog:check":
		catalogs := loadCatalogs(cfg, log)
		for _, set := range []*catalog.ReferenceSet{catalogs.Division, catalogs.LocationType, catalogs.PrimaryOffence, catalogs.Neighbourhood158} {
			fmt.Printf("%-18s %d values\n", set.Name(), set.Len())
		}
	case "simulate":
		opts, err := pipeline.SimulateOptionsFromConfig(cfg)
		must(err)
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		rows := fs.Int("rows", opts.Rows, "number of rows")
		dirty := fs.Float64("dirty", opts.DirtyRate, "probability of injecting a sentinel value per row")
		out := fs.String("out", filepath.Join(cfg.OutputDir, "simulated_data.xlsx"), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		opts.Rows = *rows
		opts.DirtyRate = *dirty

		catalogs := loadCatalogs(cfg, log)
		records, err := pipeline.Simulate(catalogs, opts)
		must(err)
		must(pipeline.ExportRawRecordsToXLSX(records, []string{internal.FieldBias}, *out))
		log.Infow("simulated dataset written", "rows", len(records), "output", *out)
		fmt.Printf("simulate done rows=%d output=%s\n", len(records), *out)
	case "validate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file path")
		inType := fs.String("type", "xlsx", "xlsx|json")
		output := fs.String("out", "", "output xlsx path (default $OUTPUT_DIR/validation.xlsx)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		catalogs := loadCatalogs(cfg, log)
		proc := pipeline.NewProcessingService(cfg, catalogs, log)
		res, err := proc.ProcessFile(*inType, *input, *output)
		must(err)
		fmt.Printf("validate done rows=%d accepted=%d rejected=%d output=%s\n", res.Total, res.Accepted, res.Rejected, res.Output)
	case "normalize":
		for _, v := range os.Args[2:] {
			fmt.Printf("%q -> %q\n", v, util.NormalizeNeighbourhood(v))
		}
	default:
		usage()
		os.Exit(1)
	}
}

// loadCatalogs exits the process when any catalog is unusable.
func loadCatalogs(cfg config.Config, log *zap.SugaredLogger) *catalog.Catalogs {
	must(cfg.Require("CATALOG_DIR", cfg.CatalogDir))
	catalogs, err := catalog.Load(catalog.PathsFromConfig(cfg))
	if err != nil {
		log.Errorw("catalog load failed", "error", err)
		_ = log.Sync()
		must(err)
	}
	log.Debugw("catalogs loaded",
		"division", catalogs.Division.Len(),
		"locationType", catalogs.LocationType.Len(),
		"primaryOffence", catalogs.PrimaryOffence.Len(),
		"neighbourhood", catalogs.Neighbourhood158.Len(),
	)
	return catalogs
}

func usage() {
	fmt.Println("usage: hatecrimes <command>")
	fmt.Println("commands:")
	fmt.Println("  catalog:check")
	fmt.Println("  simulate [--rows=20] [--dirty=0.1] [--out=./out/simulated_data.xlsx]")
	fmt.Println("  validate --input=... [--type=xlsx|json] [--out=./out/validation.xlsx]")
	fmt.Println("  normalize <neighbourhood>...")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
