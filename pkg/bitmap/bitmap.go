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

// Package bitmap provides a fixed-size bit set backed by an on-disk block.
//
// Bit i lives in byte i/8 at position i%8, least significant bit first.
package bitmap

import "fmt"

// Bitmap is a fixed-size bit set. The zero value is an empty bitmap of
// length zero.
type Bitmap struct {
	data []byte
}

// New returns a zeroed bitmap of size bytes.
func New(size int) *Bitmap {
	return &Bitmap{data: make([]byte, size)}
}

// FromBytes returns a bitmap holding a copy of data.
func FromBytes(data []byte) *Bitmap {
	b := New(len(data))
	copy(b.data, data)
	return b
}

// Len returns the number of bits in the bitmap.
func (b *Bitmap) Len() int {
	return len(b.data) * 8
}

func (b *Bitmap) check(index int) {
	if index < 0 || index >= b.Len() {
		panic(fmt.Sprintf("bitmap index %v out of range [0, %v)", index, b.Len()))
	}
}

// Test returns whether bit index is set.
func (b *Bitmap) Test(index int) bool {
	b.check(index)
	return (b.data[index/8]>>(index%8))&1 == 1
}

// Set sets bit index.
func (b *Bitmap) Set(index int) {
	b.check(index)
	b.data[index/8] |= 1 << (index % 8)
}

// Clear clears bit index.
func (b *Bitmap) Clear(index int) {
	b.check(index)
	b.data[index/8] &^= 1 << (index % 8)
}

// Count returns the number of set bits in [0, n).
func (b *Bitmap) Count(n int) (count int) {
	for i := 0; i < n && i < b.Len(); i++ {
		if b.Test(i) {
			count++
		}
	}
	return count
}

// Bytes returns a copy of the backing bytes.
func (b *Bitmap) Bytes() []byte {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return data
}
