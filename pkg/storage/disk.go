// Package storage is the sink for generated order exports. The dashboard
// writes CSV snapshots here and hands the resulting URL back to the operator.
//
// Two drivers:
//   - "local": filesystem directory (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2)
//
// Boot once at startup with Connect(), then write through the package-level
// helpers or a named disk:
//
//	storage.Put("exports/pedidos-2025-01-15.csv", data)
//	storage.Use("s3").Put("exports/pedidos.csv", data)
package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/adrialopez/woocommerce-orders/config"
	"github.com/adrialopez/woocommerce-orders/pkg/logger"
)

// Disk is the export sink driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Nil if the file did not exist.
	Delete(path string) error

	// URL returns the address an operator can download path from.
	URL(path string) string

	// Files lists the filenames directly inside directory.
	Files(directory string) ([]string, error)
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the configured disks. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: disco s3 deshabilitado", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk, panicking on an unconfigured name. Disks are
// wired at boot, so a bad name is a programming error.
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk, mainly for tests.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

func defaultD() Disk { return Use(defaultDisk) }

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return defaultD().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return defaultD().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return defaultD().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return defaultD().Delete(path) }

// URL returns the download URL for path on the default disk.
func URL(path string) string { return defaultD().URL(path) }

// Files lists files in directory on the default disk.
func Files(directory string) ([]string, error) { return defaultD().Files(directory) }
