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
	"github.com/minio/vsfsck/pkg/vsfs"
	"k8s.io/klog/v2"
)

// Superblock field groups.
const (
	fieldMagic      = "magic"
	fieldBlockSize  = "block_size"
	fieldBlockCount = "block_count"
	fieldLayout     = "layout"
	fieldInodeSize  = "inode_size"
	fieldInodeCount = "inode_count"
)

func geometryFinding(field string, values ...FieldValue) Finding {
	return Finding{Kind: KindGeometry, Field: field, Values: values}
}

// validateSuperBlock checks every field group independently. Geometry is
// never corrected; callers keep using the loaded values.
func validateSuperBlock(sb *vsfs.SuperBlock) (findings []Finding) {
	if sb.Magic != vsfs.Magic {
		findings = append(findings, geometryFinding(fieldMagic, FieldValue{"magic", uint32(sb.Magic), vsfs.Magic}))
	}

	if sb.BlockSize != vsfs.BlockSize {
		findings = append(findings, geometryFinding(fieldBlockSize, FieldValue{"block_size", sb.BlockSize, vsfs.BlockSize}))
	}

	if sb.BlockCount != vsfs.BlockCount {
		findings = append(findings, geometryFinding(fieldBlockCount, FieldValue{"block_count", sb.BlockCount, vsfs.BlockCount}))
	}

	if sb.InodeBitmapLoc != vsfs.InodeBitmapIndex ||
		sb.DataBitmapLoc != vsfs.DataBitmapIndex ||
		sb.InodeStart != vsfs.InodeTableIndex ||
		sb.DataStart != vsfs.DataStartIndex {
		findings = append(findings, geometryFinding(
			fieldLayout,
			FieldValue{"inode_bitmap", sb.InodeBitmapLoc, vsfs.InodeBitmapIndex},
			FieldValue{"data_bitmap", sb.DataBitmapLoc, vsfs.DataBitmapIndex},
			FieldValue{"inode_table", sb.InodeStart, vsfs.InodeTableIndex},
			FieldValue{"data_start", sb.DataStart, vsfs.DataStartIndex},
		))
	}

	if sb.InodeSize != vsfs.InodeSize {
		findings = append(findings, geometryFinding(fieldInodeSize, FieldValue{"inode_size", sb.InodeSize, vsfs.InodeSize}))
	}

	if sb.InodeCount > vsfs.MaxInodes {
		findings = append(findings, geometryFinding(fieldInodeCount, FieldValue{"inode_count", sb.InodeCount, vsfs.MaxInodes}))
	}

	for _, finding := range findings {
		klog.V(3).InfoS("Superblock mismatch", "finding", finding.String())
	}
	return findings
}
