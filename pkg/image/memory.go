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
	"io"
)

// Memory is a Device backed by a byte slice. It never grows; reads and
// writes past the end are short.
type Memory struct {
	data   []byte
	writes int
}

var _ Device = (*Memory)(nil)

// NewMemory returns a memory device holding a copy of data.
func NewMemory(data []byte) *Memory {
	m := &Memory{data: make([]byte, len(data))}
	copy(m.data, data)
	return m
}

// ReadAt implements io.ReaderAt.
func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt.
func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	m.writes++
	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.ErrShortWrite
	}
	n := copy(m.data[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Size returns the length of the backing slice.
func (m *Memory) Size() (int64, error) {
	return int64(len(m.data)), nil
}

// Sync is a no-op.
func (m *Memory) Sync() error {
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// Bytes returns a copy of the current contents.
func (m *Memory) Bytes() []byte {
	data := make([]byte, len(m.data))
	copy(data, m.data)
	return data
}

// Writes returns the number of WriteAt calls made.
func (m *Memory) Writes() int {
	return m.writes
}
