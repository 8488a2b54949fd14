// Package blob selects and re-exports the artifact store backends used to
// persist build reports.
package blob

import (
	"context"
	"fmt"
	"os"

	"github.com/LarnoVisser/RoomMaker/internal/infra/blob/core"
	"github.com/LarnoVisser/RoomMaker/internal/infra/blob/fs"
	"github.com/LarnoVisser/RoomMaker/internal/infra/blob/memory"
	"github.com/LarnoVisser/RoomMaker/internal/infra/blob/s3"
)

type (
	// Driver identifies an artifact backend driver.
	Driver = core.Driver
	// PutOptions configures an artifact write.
	PutOptions = core.PutOptions
	// Info describes stored artifact metadata.
	Info = core.Info
	// Store is the interface for artifact storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
)

// NewFilesystem returns a filesystem-backed artifact store rooted at root.
func NewFilesystem(root string) (Store, error) { return fs.New(root) }

// NewMemory returns an in-memory artifact store.
func NewMemory() Store { return memory.New() }

// Open selects a Store implementation using environment variables.
//
//	ROOMMAKER_BLOB_DRIVER: fs|s3|memory (default fs)
//	ROOMMAKER_BLOB_FS_ROOT: directory root when driver=fs (default ./reports)
//	(S3 specific variables documented in the s3 package)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("ROOMMAKER_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		root := os.Getenv("ROOMMAKER_BLOB_FS_ROOT")
		return fs.New(root)
	case DriverS3:
		return s3.OpenFromEnv(ctx)
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
