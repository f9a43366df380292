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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/vsfsck/pkg/vsfs"
)

func TestReadBlock(t *testing.T) {
	data := make([]byte, 2*vsfs.BlockSize+100)
	data[vsfs.BlockSize] = 0xaa
	data[2*vsfs.BlockSize] = 0xbb
	dev := NewMemory(data)

	testCases := []struct {
		block     uint32
		n         int
		first     byte
		shortRead bool
	}{
		{0, vsfs.BlockSize, 0x00, false},
		{1, vsfs.BlockSize, 0xaa, false},
		{2, 100, 0xbb, true},
		{3, 0, 0x00, true},
	}

	for i, testCase := range testCases {
		buf := make([]byte, vsfs.BlockSize)
		n, err := ReadBlock(dev, testCase.block, buf)
		if testCase.shortRead != errors.Is(err, ErrShortRead) {
			t.Fatalf("case %v: short read: expected: %v, got: %v", i+1, testCase.shortRead, err)
		}
		if n != testCase.n {
			t.Fatalf("case %v: n: expected: %v, got: %v", i+1, testCase.n, n)
		}
		if buf[0] != testCase.first {
			t.Fatalf("case %v: first byte: expected: %x, got: %x", i+1, testCase.first, buf[0])
		}
	}
}

func TestWriteBlock(t *testing.T) {
	dev := NewMemory(make([]byte, vsfs.BlockSize+10))

	block := bytes.Repeat([]byte{0x5a}, vsfs.BlockSize)
	if _, err := WriteBlock(dev, 0, block); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dev.Bytes()[:vsfs.BlockSize], block) {
		t.Fatalf("block 0 not written")
	}

	n, err := WriteBlock(dev, 1, block)
	if !errors.Is(err, ErrShortWrite) {
		t.Fatalf("expected short write, got: %v", err)
	}
	if n != 10 {
		t.Fatalf("n: expected: 10, got: %v", n)
	}

	if _, err := WriteBlock(dev, 0, block[:10]); err == nil {
		t.Fatalf("expected error for partial block buffer")
	}
}

func TestFileReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.img")
	if err := os.WriteFile(path, make([]byte, vsfs.ImageSize), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	size, err := file.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != vsfs.ImageSize {
		t.Fatalf("size: expected: %v, got: %v", vsfs.ImageSize, size)
	}

	if _, err := WriteBlock(file, 1, make([]byte, vsfs.BlockSize)); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected read-only error, got: %v", err)
	}
}

func TestFileReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.img")
	if err := os.WriteFile(path, make([]byte, vsfs.ImageSize), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := Open(path, true)
	if err != nil {
		t.Fatal(err)
	}

	block := bytes.Repeat([]byte{0x01}, vsfs.BlockSize)
	if _, err := WriteBlock(file, 2, block); err != nil {
		t.Fatal(err)
	}
	if err := file.Sync(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data[2*vsfs.BlockSize:3*vsfs.BlockSize], block) {
		t.Fatalf("block 2 not persisted")
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.img"), false); err == nil {
		t.Fatalf("expected error, but succeeded")
	}
}
