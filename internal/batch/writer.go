package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rawframes/internal/scene"
)

// WriteFile writes data to path. With atomic set the bytes land in a temp
// file in the same directory and are renamed over path, so a reader never
// sees a truncated frame.
func WriteFile(path string, data []byte, atomic bool) error {
	if !atomic {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("batch: write %s: %w", path, err)
		}
		return nil
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp*")
	if err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("batch: write %s: %w", path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("batch: rename %s: %w", path, err)
	}
	return nil
}

// complete reports whether every file of a frame exists with its exact size.
func complete(dir string, specs []scene.FileSpec, w, h int) bool {
	for _, s := range specs {
		info, err := os.Stat(filepath.Join(dir, s.Name))
		if err != nil || info.Size() != int64(s.Format.Size(w, h)) {
			return false
		}
	}
	return true
}

// HashFile returns the hex SHA-256 and size of a file.
func HashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
