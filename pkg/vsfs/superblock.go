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

package vsfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// SuperBlockSize is the number of meaningful bytes at the start of block 0.
const SuperBlockSize = 36

// SuperBlock denotes VSFS superblock.
type SuperBlock struct {
	Magic          uint16 `json:"magic"`          // 2 bytes.
	_              uint16                          // 2 bytes.
	BlockSize      uint32 `json:"blockSize"`      // 4 bytes.
	BlockCount     uint32 `json:"blockCount"`     // 4 bytes.
	InodeBitmapLoc uint32 `json:"inodeBitmapLoc"` // 4 bytes.
	DataBitmapLoc  uint32 `json:"dataBitmapLoc"`  // 4 bytes.
	InodeStart     uint32 `json:"inodeStart"`     // 4 bytes.
	DataStart      uint32 `json:"dataStart"`      // 4 bytes.
	InodeSize      uint32 `json:"inodeSize"`      // 4 bytes.
	InodeCount     uint32 `json:"inodeCount"`     // 4 bytes.
	// Ignoring the reserved rest of the block
}

// NewSuperBlock returns a superblock carrying the expected geometry.
func NewSuperBlock(inodeCount uint32) *SuperBlock {
	return &SuperBlock{
		Magic:          Magic,
		BlockSize:      BlockSize,
		BlockCount:     BlockCount,
		InodeBitmapLoc: InodeBitmapIndex,
		DataBitmapLoc:  DataBitmapIndex,
		InodeStart:     InodeTableIndex,
		DataStart:      DataStartIndex,
		InodeSize:      InodeSize,
		InodeCount:     inodeCount,
	}
}

// ParseSuperBlock decodes the superblock from the start of data.
func ParseSuperBlock(data []byte) (*SuperBlock, error) {
	var sb SuperBlock
	if err := binary.Read(bytes.NewReader(data), byteOrder, &sb); err != nil {
		return nil, fmt.Errorf("unable to decode superblock; %w", err)
	}
	return &sb, nil
}

// MarshalBinary encodes the superblock as a full, zero padded block.
func (sb *SuperBlock) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, byteOrder, sb); err != nil {
		return nil, err
	}
	block := make([]byte, BlockSize)
	copy(block, buf.Bytes())
	return block, nil
}

// InodeTableOffset returns the byte offset of the first inode record.
func (sb *SuperBlock) InodeTableOffset() int64 {
	return int64(sb.InodeStart) * BlockSize
}
