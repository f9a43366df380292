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

package bitmap

import (
	"bytes"
	"testing"
)

func TestBitLayout(t *testing.T) {
	testCases := []struct {
		index    int
		expected []byte
	}{
		{0, []byte{0x01, 0x00}},
		{7, []byte{0x80, 0x00}},
		{8, []byte{0x00, 0x01}},
		{10, []byte{0x00, 0x04}},
		{15, []byte{0x00, 0x80}},
	}

	for i, testCase := range testCases {
		b := New(2)
		b.Set(testCase.index)
		if !bytes.Equal(b.Bytes(), testCase.expected) {
			t.Fatalf("case %v: expected: %x, got: %x", i+1, testCase.expected, b.Bytes())
		}
		if !b.Test(testCase.index) {
			t.Fatalf("case %v: bit %v not set", i+1, testCase.index)
		}
		b.Clear(testCase.index)
		if !bytes.Equal(b.Bytes(), []byte{0, 0}) {
			t.Fatalf("case %v: expected cleared bitmap, got: %x", i+1, b.Bytes())
		}
	}
}

func TestClearKeepsNeighbours(t *testing.T) {
	b := FromBytes([]byte{0xff})
	b.Clear(3)
	if got := b.Bytes()[0]; got != 0xf7 {
		t.Fatalf("expected: f7, got: %x", got)
	}
	if b.Count(8) != 7 {
		t.Fatalf("count: expected: 7, got: %v", b.Count(8))
	}
	if b.Count(3) != 3 {
		t.Fatalf("count: expected: 3, got: %v", b.Count(3))
	}
}

func TestFromBytesCopies(t *testing.T) {
	data := []byte{0x00}
	b := FromBytes(data)
	b.Set(0)
	if data[0] != 0 {
		t.Fatalf("FromBytes must not alias its input")
	}
	out := b.Bytes()
	out[0] = 0
	if !b.Test(0) {
		t.Fatalf("Bytes must return a copy")
	}
}

func TestOutOfRange(t *testing.T) {
	b := New(1)
	if b.Len() != 8 {
		t.Fatalf("len: expected: 8, got: %v", b.Len())
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out of range index")
		}
	}()
	b.Set(8)
}
