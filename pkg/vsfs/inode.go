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

// Inode denotes an on-disk inode record. Only the leading fields are
// meaningful; the rest of the InodeSize record is reserved.
//
// Indirect pointers are decoded but no check follows them.
type Inode struct {
	Mode           uint32 // 4 bytes.
	UID            uint32 // 4 bytes.
	GID            uint32 // 4 bytes.
	Size           uint32 // 4 bytes.
	ATime          uint32 // 4 bytes.
	CTime          uint32 // 4 bytes.
	MTime          uint32 // 4 bytes.
	DTime          uint32 // 4 bytes.
	LinksCount     uint32 // 4 bytes.
	Blocks         uint32 // 4 bytes.
	DirectPointer  uint32 // 4 bytes.
	IndirectPtr    uint32 // 4 bytes.
	DoubleIndirect uint32 // 4 bytes.
	TripleIndirect uint32 // 4 bytes.
}

// IsValid returns whether the inode is in use, i.e. it is linked and has not
// been deleted.
func (inode *Inode) IsValid() bool {
	return inode.LinksCount > 0 && inode.DTime == 0
}

// ParseInode decodes an inode record from the start of data.
func ParseInode(data []byte) (*Inode, error) {
	var inode Inode
	if err := binary.Read(bytes.NewReader(data), byteOrder, &inode); err != nil {
		return nil, fmt.Errorf("unable to decode inode; %w", err)
	}
	return &inode, nil
}

// MarshalBinary encodes the inode as a full, zero padded InodeSize record.
func (inode *Inode) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, byteOrder, inode); err != nil {
		return nil, err
	}
	record := make([]byte, InodeSize)
	copy(record, buf.Bytes())
	return record, nil
}
