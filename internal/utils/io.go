// Package utils provides internal utility functions used throughout the module.
//
// This package contains helpers for directory creation and project-root
// discovery. These utilities are primarily for internal use and are not
// intended to be part of the public API.
package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyp3rd/ewrap"
)

// EnsureDir creates dir and any missing parents. It reports whether the
// directory had to be created.
func EnsureDir(dir string, perm os.FileMode) (bool, error) {
	if strings.TrimSpace(dir) == "" {
		return false, ewrap.New("directory path cannot be empty")
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, ewrap.New("path exists and is not a directory").
				WithMetadata("path", dir)
		}

		return false, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return false, ewrap.Wrap(err, "inspecting directory").WithMetadata("path", dir)
	}

	err = os.MkdirAll(dir, perm)
	if err != nil {
		return false, ewrap.Wrap(err, "creating directory").WithMetadata("path", dir)
	}

	return true, nil
}

// FindRoot walks up from start until it finds a directory containing marker.
// The walk stops at the user's home directory or the filesystem root, in
// which case start itself is returned.
func FindRoot(start, marker string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", ewrap.Wrap(err, "resolving start directory").WithMetadata("start", start)
	}

	home, _ := os.UserHomeDir()
	origin := dir

	for {
		_, statErr := os.Stat(filepath.Join(dir, marker))
		if statErr == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home {
			return origin, nil
		}

		dir = parent
	}
}
