// This file is part of MinIO VSFSCK
// Copyright (c) 2026 MinIO, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// SafeFile writes to a temporary file in the target directory and renames it
// to the target name on Close, so readers never see a partial file.
type SafeFile struct {
	filename string
	tempFile *os.File
}

// NewSafeFile creates a SafeFile for filename. The parent directory must exist.
func NewSafeFile(filename string) (*SafeFile, error) {
	tempFile, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.")
	if err != nil {
		return nil, err
	}
	return &SafeFile{filename: filename, tempFile: tempFile}, nil
}

// Write implements io.Writer.
func (safeFile *SafeFile) Write(p []byte) (int, error) {
	return safeFile.tempFile.Write(p)
}

// Close syncs the temporary file and renames it to the target name.
func (safeFile *SafeFile) Close() error {
	if err := safeFile.tempFile.Sync(); err != nil {
		return multierr.Append(
			fmt.Errorf("unable to sync %v; %w", safeFile.tempFile.Name(), err),
			safeFile.Abort(),
		)
	}
	if err := safeFile.tempFile.Close(); err != nil {
		return multierr.Append(err, os.Remove(safeFile.tempFile.Name()))
	}
	return os.Rename(safeFile.tempFile.Name(), safeFile.filename)
}

// Abort discards the temporary file.
func (safeFile *SafeFile) Abort() error {
	return multierr.Append(safeFile.tempFile.Close(), os.Remove(safeFile.tempFile.Name()))
}

// WriteFile atomically writes data to filename.
func WriteFile(filename string, data []byte) error {
	safeFile, err := NewSafeFile(filename)
	if err != nil {
		return err
	}
	if _, err := safeFile.Write(data); err != nil {
		return multierr.Append(err, safeFile.Abort())
	}
	return safeFile.Close()
}
