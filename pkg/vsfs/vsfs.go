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

// Package vsfs describes the on-disk layout of a VSFS image.
//
// A VSFS image has fixed geometry: 64 blocks of 4 KiB each, a superblock in
// block 0, one inode bitmap block, one data bitmap block, a five block inode
// table and a data region spanning the remaining blocks. All integers are
// stored little-endian without padding.
package vsfs

import "encoding/binary"

const (
	// Magic is the superblock magic number.
	Magic = 0xd34d

	// BlockSize is the size of every block in bytes.
	BlockSize = 4096

	// BlockCount is the number of blocks in an image.
	BlockCount = 64

	// InodeSize is the size of an on-disk inode record.
	InodeSize = 256

	// InodesPerBlock is the number of inode records stored in one block.
	InodesPerBlock = BlockSize / InodeSize

	// SuperBlockIndex is the block holding the superblock.
	SuperBlockIndex = 0

	// InodeBitmapIndex is the block holding the inode allocation bitmap.
	InodeBitmapIndex = 1

	// DataBitmapIndex is the block holding the data allocation bitmap.
	DataBitmapIndex = 2

	// InodeTableIndex is the first block of the inode table.
	InodeTableIndex = 3

	// DataStartIndex is the first block of the data region.
	DataStartIndex = 8

	// DataEndIndex is the last block of the data region.
	DataEndIndex = BlockCount - 1

	// DataBlocks is the number of blocks in the data region.
	DataBlocks = DataEndIndex - DataStartIndex + 1

	// MaxInodes is the capacity of the inode table.
	MaxInodes = 80

	// ImageSize is the expected size of an image in bytes.
	ImageSize = BlockSize * BlockCount
)

var byteOrder = binary.LittleEndian

// InDataRegion returns whether block lies within the data region.
func InDataRegion(block uint32) bool {
	return block >= DataStartIndex && block <= DataEndIndex
}

// DataIndex converts a data region block number to its bitmap index.
func DataIndex(block uint32) int {
	return int(block) - DataStartIndex
}

// DataBlock converts a data bitmap index to its block number.
func DataBlock(index int) uint32 {
	return uint32(index + DataStartIndex)
}
