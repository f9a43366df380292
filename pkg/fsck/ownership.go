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

const unowned = -1

var dataRange = BlockRange{First: vsfs.DataStartIndex, Last: vsfs.DataEndIndex}

// auditBlockOwnership reports direct pointers outside the data region and
// data blocks claimed by more than one valid inode. Inodes are visited in
// ascending order and the first claimant keeps the block. Nothing is repaired.
func (c *checker) auditBlockOwnership() StageReport {
	report := StageReport{Stage: StageBlockReferences}

	owners := make([]int, vsfs.DataBlocks)
	for i := range owners {
		owners[i] = unowned
	}

	for i := range c.inodes {
		if !c.inodes[i].IsValid() {
			continue
		}

		block := c.inodes[i].DirectPointer
		if !vsfs.InDataRegion(block) {
			r := dataRange
			report.Findings = append(report.Findings, Finding{
				Kind:  KindInvalidReference,
				Inode: u32(uint32(i)),
				Block: u32(block),
				Range: &r,
			})
			continue
		}

		index := vsfs.DataIndex(block)
		if owner := owners[index]; owner != unowned {
			report.Findings = append(report.Findings, Finding{
				Kind:  KindDuplicateClaim,
				Inode: u32(uint32(i)),
				Block: u32(block),
				Owner: u32(uint32(owner)),
			})
			continue
		}
		owners[index] = i
	}

	for _, finding := range report.Findings {
		klog.V(3).InfoS("Block reference error", "finding", finding.String())
	}
	return report
}
