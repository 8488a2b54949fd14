// Command roommaker reads a room specification in meters and materializes the
// matching walls and floor in the document store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/LarnoVisser/RoomMaker/internal/build"
	"github.com/LarnoVisser/RoomMaker/internal/infra/blob"
	"github.com/LarnoVisser/RoomMaker/internal/infra/logging"
	"github.com/LarnoVisser/RoomMaker/pkg/model"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if kind := model.KindOf(err); kind != "" {
			fmt.Fprintf(os.Stderr, "roommaker: %s: %v\n", kind, err)
		} else {
			fmt.Fprintf(os.Stderr, "roommaker: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("roommaker", flag.ContinueOnError)
	specPath := fs.String("spec", "", "path to the room spec JSON file (required)")
	dbPath := fs.String("db", "", "sqlite database path (overrides ROOMMAKER_SQLITE_PATH)")
	seedTypes := fs.Bool("seed-types", false, "create default wall and floor types when missing")
	reportDir := fs.String("report-dir", "", "directory for build reports (overrides ROOMMAKER_BLOB_FS_ROOT)")
	logLevel := fs.String("log-level", "info", "log level: debug|info|warn|error")
	logFormat := fs.String("log-format", "json", "log format: json|console")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *specPath == "" {
		fs.Usage()
		return errors.New("missing required -spec flag")
	}

	zl, err := logging.New(*logLevel, *logFormat, "roommaker")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := build.NewZapLogger(zl)

	if *dbPath != "" {
		if err := os.Setenv("ROOMMAKER_SQLITE_PATH", *dbPath); err != nil {
			return fmt.Errorf("apply -db: %w", err)
		}
	}
	if *reportDir != "" {
		if err := os.Setenv("ROOMMAKER_BLOB_FS_ROOT", *reportDir); err != nil {
			return fmt.Errorf("apply -report-dir: %w", err)
		}
	}

	ctx := context.Background()

	store, err := build.OpenDocumentStore(build.NewDefaultRulesEngine())
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer closeStore(store, logger)

	spec, err := build.LoadSpecFile(*specPath)
	if err != nil {
		return err
	}

	svc := build.NewService(store,
		build.WithLogger(logger),
		build.WithMetrics(build.NewExpvarMetricsRecorder("")),
	)
	if *seedTypes {
		if err := svc.SeedDefaultTypes(ctx); err != nil {
			return err
		}
	}

	start := time.Now()
	result, _, err := svc.CreateRoom(ctx, spec)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	publishReport(ctx, logger, spec, result, duration)

	fmt.Printf("room built: level=%s walls=%d floor=%s\n",
		result.LevelID, len(result.WallIDs), result.FloorID)
	return nil
}

// publishReport stores the build report as an artifact. By this point the
// document transaction has committed, so failures are logged rather than
// surfaced as build failures.
func publishReport(ctx context.Context, logger build.Logger, spec build.RoomSpec, result build.RoomBuild, duration time.Duration) {
	store, err := blob.Open(ctx)
	if err != nil {
		logger.Warn("report store unavailable", "error", err.Error())
		return
	}
	publisher := build.NewReportPublisher(store, logger)
	if _, err := publisher.Publish(ctx, build.NewBuildReport(spec, result, duration)); err != nil {
		logger.Warn("report publish failed", "error", err.Error())
	}
}

func closeStore(store build.PersistentStore, logger build.Logger) {
	type closer interface{ Close() error }
	if c, ok := store.(closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("close document store", "error", err.Error())
		}
	}
}
