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
	"strings"
)

// Stage denotes a check stage.
type Stage string

// Check stages in run order.
const (
	StageSuperBlock      Stage = "superblock"
	StageInodeBitmap     Stage = "inode-bitmap"
	StageDataBitmap      Stage = "data-bitmap"
	StageBlockReferences Stage = "block-references"
)

// Stages lists all stages in run order.
var Stages = []Stage{StageSuperBlock, StageInodeBitmap, StageDataBitmap, StageBlockReferences}

// Kind denotes the kind of a finding.
type Kind string

// Finding kinds.
const (
	// KindGeometry denotes a superblock field group not matching the fixed geometry.
	KindGeometry Kind = "geometry-mismatch"

	// KindInodeMarkedInvalid denotes an inode bitmap bit set for an invalid inode.
	KindInodeMarkedInvalid Kind = "inode-marked-but-invalid"

	// KindInodeUnmarkedValid denotes an inode bitmap bit clear for a valid inode.
	KindInodeUnmarkedValid Kind = "inode-unmarked-but-valid"

	// KindBlockMarkedUnreferenced denotes a data bitmap bit set for an unreferenced block.
	KindBlockMarkedUnreferenced Kind = "block-marked-but-unreferenced"

	// KindBlockReferencedUnmarked denotes a data bitmap bit clear for a referenced block.
	KindBlockReferencedUnmarked Kind = "block-referenced-but-unmarked"

	// KindInvalidReference denotes a direct pointer outside the data region.
	KindInvalidReference Kind = "invalid-reference"

	// KindDuplicateClaim denotes a data block referenced by more than one inode.
	KindDuplicateClaim Kind = "duplicate-claim"
)

// Kinds lists all finding kinds.
var Kinds = []Kind{
	KindGeometry,
	KindInodeMarkedInvalid,
	KindInodeUnmarkedValid,
	KindBlockMarkedUnreferenced,
	KindBlockReferencedUnmarked,
	KindInvalidReference,
	KindDuplicateClaim,
}

// Repairable returns whether findings of this kind are fixed in repair mode.
func (k Kind) Repairable() bool {
	switch k {
	case KindInodeMarkedInvalid, KindInodeUnmarkedValid, KindBlockMarkedUnreferenced, KindBlockReferencedUnmarked:
		return true
	default:
		return false
	}
}

// FieldValue is an observed superblock field and the value it must have.
type FieldValue struct {
	Name     string `json:"name"`
	Observed uint32 `json:"observed"`
	Expected uint32 `json:"expected"`
}

// BlockRange is an inclusive range of block numbers.
type BlockRange struct {
	First uint32 `json:"first"`
	Last  uint32 `json:"last"`
}

func (r BlockRange) String() string {
	return fmt.Sprintf("%v-%v", r.First, r.Last)
}

// Finding is a single inconsistency found in the image.
type Finding struct {
	Kind Kind `json:"kind"`

	// Superblock findings.
	Field  string       `json:"field,omitempty"`
	Values []FieldValue `json:"values,omitempty"`

	Inode *uint32     `json:"inode,omitempty"`
	Block *uint32     `json:"block,omitempty"`
	Owner *uint32     `json:"owner,omitempty"`
	Range *BlockRange `json:"range,omitempty"`

	Repaired bool `json:"repaired"`
}

func u32(v uint32) *uint32 {
	return &v
}

func deref(v *uint32) uint32 {
	if v == nil {
		return 0
	}
	return *v
}

func (f Finding) String() string {
	inode, block, owner := deref(f.Inode), deref(f.Block), deref(f.Owner)
	switch f.Kind {
	case KindGeometry:
		return f.geometryString()
	case KindInodeMarkedInvalid:
		return fmt.Sprintf("inode %v is marked as used but is invalid", inode)
	case KindInodeUnmarkedValid:
		return fmt.Sprintf("inode %v is valid but not marked as used", inode)
	case KindBlockMarkedUnreferenced:
		return fmt.Sprintf("data block %v is marked as used but not referenced", block)
	case KindBlockReferencedUnmarked:
		return fmt.Sprintf("data block %v is referenced but not marked as used", block)
	case KindInvalidReference:
		r := BlockRange{}
		if f.Range != nil {
			r = *f.Range
		}
		return fmt.Sprintf("inode %v points to invalid block %v (valid range: %v)", inode, block, r)
	case KindDuplicateClaim:
		return fmt.Sprintf("block %v is claimed by both inode %v and inode %v", block, owner, inode)
	default:
		return string(f.Kind)
	}
}

func (f Finding) geometryString() string {
	if f.Field == fieldInodeCount && len(f.Values) == 1 {
		return fmt.Sprintf("too many inodes: %v (max allowed: %v)", f.Values[0].Observed, f.Values[0].Expected)
	}
	if f.Field == fieldMagic && len(f.Values) == 1 {
		return fmt.Sprintf("invalid magic number 0x%x (expected 0x%x)", f.Values[0].Observed, f.Values[0].Expected)
	}

	values := make([]string, 0, len(f.Values))
	for _, value := range f.Values {
		values = append(values, fmt.Sprintf("%v: %v (expected %v)", value.Name, value.Observed, value.Expected))
	}
	return fmt.Sprintf("%v mismatch; %v", f.Field, strings.Join(values, ", "))
}

// Warning denotes a non-fatal problem met while accessing the image.
type Warning struct {
	Op      string `json:"op"`
	Target  string `json:"target"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%v %v: %v", w.Op, w.Target, w.Message)
}
