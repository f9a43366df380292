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

package image

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

// File is a Device backed by a regular file or a block device.
type File struct {
	file     *os.File
	readOnly bool
}

var _ Device = (*File)(nil)

// Open opens the image at path. The image is opened read-write only when
// readWrite is set, so a check-only run cannot modify it.
func Open(path string, readWrite bool) (*File, error) {
	flag := os.O_RDONLY
	if readWrite {
		flag = os.O_RDWR
	}

	file, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}

	klog.V(3).InfoS("Opened image", "path", path, "readWrite", readWrite)
	return &File{file: file, readOnly: !readWrite}, nil
}

// Name returns the path of the image.
func (f *File) Name() string {
	return f.file.Name()
}

// ReadAt implements io.ReaderAt.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}

// WriteAt implements io.WriterAt.
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	if f.readOnly {
		return 0, fmt.Errorf("%w; %v", ErrReadOnly, f.file.Name())
	}
	return f.file.WriteAt(p, off)
}

// Size returns the size of the image. Block devices are sized by ioctl.
func (f *File) Size() (int64, error) {
	info, err := f.file.Stat()
	if err != nil {
		return 0, err
	}

	if info.Mode()&os.ModeDevice != 0 {
		return blockDeviceSize(f.file)
	}

	return info.Size(), nil
}

// Sync commits written blocks to stable storage.
func (f *File) Sync() error {
	if f.readOnly {
		return nil
	}
	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("unable to sync %v; %w", f.file.Name(), err)
	}
	return nil
}

// Close closes the image.
func (f *File) Close() error {
	return f.file.Close()
}
