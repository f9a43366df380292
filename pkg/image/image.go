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

// Package image provides block addressed access to a backing filesystem image.
package image

import (
	"errors"
	"fmt"
	"io"

	"github.com/minio/vsfsck/pkg/vsfs"
)

var (
	// ErrShortRead denotes fewer bytes read than requested.
	ErrShortRead = errors.New("short read")

	// ErrShortWrite denotes fewer bytes written than requested.
	ErrShortWrite = errors.New("short write")

	// ErrReadOnly denotes a write to a device opened read-only.
	ErrReadOnly = errors.New("device is read-only")
)

// Device is a random access byte store holding an image.
type Device interface {
	io.ReaderAt
	io.WriterAt

	// Size returns the size of the store in bytes.
	Size() (int64, error)
	Sync() error
	Close() error
}

func blockOffset(block uint32) int64 {
	return int64(block) * vsfs.BlockSize
}

// ReadAt reads len(buf) bytes at offset into buf. On a short read the bytes
// obtained are kept and the error wraps ErrShortRead.
func ReadAt(dev Device, buf []byte, offset int64) (int, error) {
	n, err := dev.ReadAt(buf, offset)
	if n == len(buf) {
		return n, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, fmt.Errorf("%w; read %v of %v bytes at offset %v", ErrShortRead, n, len(buf), offset)
	}
	return n, fmt.Errorf("%w; read %v of %v bytes at offset %v; %v", ErrShortRead, n, len(buf), offset, err)
}

// ReadBlock reads block into buf which must be vsfs.BlockSize long.
func ReadBlock(dev Device, block uint32, buf []byte) (int, error) {
	if len(buf) != vsfs.BlockSize {
		return 0, fmt.Errorf("invalid buffer size %v for block %v", len(buf), block)
	}
	return ReadAt(dev, buf, blockOffset(block))
}

// WriteBlock writes a full block from buf which must be vsfs.BlockSize long.
func WriteBlock(dev Device, block uint32, buf []byte) (int, error) {
	if len(buf) != vsfs.BlockSize {
		return 0, fmt.Errorf("invalid buffer size %v for block %v", len(buf), block)
	}
	n, err := dev.WriteAt(buf, blockOffset(block))
	switch {
	case n == len(buf) && err == nil:
		return n, nil
	case err == nil || errors.Is(err, io.ErrShortWrite):
		return n, fmt.Errorf("%w; wrote %v of %v bytes to block %v", ErrShortWrite, n, len(buf), block)
	default:
		return n, fmt.Errorf("wrote %v of %v bytes to block %v; %w", n, len(buf), block, err)
	}
}
