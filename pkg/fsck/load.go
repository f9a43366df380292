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

package fsck

import (
	"fmt"

	"github.com/minio/vsfsck/pkg/bitmap"
	"github.com/minio/vsfsck/pkg/image"
	"github.com/minio/vsfsck/pkg/vsfs"
	"k8s.io/klog/v2"
)

// checker holds the state of a single run.
type checker struct {
	dev    image.Device
	repair bool

	sb       *vsfs.SuperBlock
	inodeMap *bitmap.Bitmap
	dataMap  *bitmap.Bitmap
	inodes   []vsfs.Inode

	warnings []Warning
}

func (c *checker) warn(op, target string, err error) {
	klog.Warningf("%v %v: %v", op, target, err)
	c.warnings = append(c.warnings, Warning{Op: op, Target: target, Message: err.Error()})
}

func (c *checker) readBlock(block uint32, what string) []byte {
	buf := make([]byte, vsfs.BlockSize)
	if _, err := image.ReadBlock(c.dev, block, buf); err != nil {
		c.warn("read", fmt.Sprintf("%v block %v", what, block), err)
	}
	return buf
}

// loadSuperBlock decodes block 0. Bytes missing from a short read stay zero
// and are left to the superblock validator to report.
func (c *checker) loadSuperBlock() {
	buf := make([]byte, vsfs.BlockSize)
	if _, err := image.ReadBlock(c.dev, vsfs.SuperBlockIndex, buf); err != nil {
		c.warn("read", "superblock block 0", err)
	}

	sb, err := vsfs.ParseSuperBlock(buf)
	if err != nil {
		c.warn("decode", "superblock", err)
		sb = &vsfs.SuperBlock{}
	}
	c.sb = sb

	klog.V(3).InfoS("Loaded superblock", "magic", fmt.Sprintf("0x%x", sb.Magic), "inodeCount", sb.InodeCount)
}

// loadMetadata reads both bitmaps at their declared positions and the inode
// table. Short reads leave the missing bytes zeroed.
func (c *checker) loadMetadata() {
	c.inodeMap = bitmap.FromBytes(c.readBlock(c.sb.InodeBitmapLoc, "inode bitmap"))
	c.dataMap = bitmap.FromBytes(c.readBlock(c.sb.DataBitmapLoc, "data bitmap"))

	count := int(c.sb.InodeCount)
	if count > vsfs.MaxInodes {
		c.warn(
			"load",
			"inode table",
			fmt.Errorf("inode count %v exceeds table capacity %v; checking first %v inodes", count, vsfs.MaxInodes, vsfs.MaxInodes),
		)
		count = vsfs.MaxInodes
	}

	table := make([]byte, count*vsfs.InodeSize)
	if _, err := image.ReadAt(c.dev, table, c.sb.InodeTableOffset()); err != nil {
		c.warn("read", fmt.Sprintf("inode table at block %v", c.sb.InodeStart), err)
	}

	c.inodes = make([]vsfs.Inode, count)
	for i := range c.inodes {
		inode, err := vsfs.ParseInode(table[i*vsfs.InodeSize : (i+1)*vsfs.InodeSize])
		if err != nil {
			c.warn("decode", fmt.Sprintf("inode %v", i), err)
			continue
		}
		c.inodes[i] = *inode
	}

	klog.V(3).InfoS("Loaded metadata", "inodes", count, "inodeBitmap", c.sb.InodeBitmapLoc, "dataBitmap", c.sb.DataBitmapLoc)
}
