package core

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/logging"
	"github.com/gofrs/flock"
)

// LockPathFor returns the lock file guarding runs that write to outputDir.
// Lock files live under the XDG state home so that the output directory
// only ever holds scan results.
func LockPathFor(outputDir string) (string, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve output directory %s", outputDir)
	}
	sum := sha256.Sum256([]byte(abs))
	name := hex.EncodeToString(sum[:8]) + ".lock"

	path, err := xdg.StateFile(filepath.Join(logging.AppName, "locks", name))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrDirCreate, "cannot create lock directory")
	}
	return path, nil
}

// acquireLock takes a non-blocking exclusive lock on path. An empty path
// disables locking.
func acquireLock(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	log := logging.GetLogger("core.lock")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create lock directory for %s", path)
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to try lock on %s", path).
			WithDetail("lock", path)
	}
	if !locked {
		return nil, errors.Newf(errors.ErrLocked, "another scan is already writing to this output directory (lock %s)", path).
			WithDetail("lock", path)
	}
	log.Debug().Str("lock", path).Msg("Run lock acquired")

	return func() {
		if err := fl.Unlock(); err != nil {
			log.Warn().Err(err).Str("lock", path).Msg("Failed to release run lock")
		}
	}, nil
}
