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

// usedBlocks returns the data region indices referenced by direct pointers of
// valid inodes. Out of range pointers are left to the ownership audit.
func (c *checker) usedBlocks() []bool {
	used := make([]bool, vsfs.DataBlocks)
	for i := range c.inodes {
		if !c.inodes[i].IsValid() {
			continue
		}
		if block := c.inodes[i].DirectPointer; vsfs.InDataRegion(block) {
			used[vsfs.DataIndex(block)] = true
		}
	}
	return used
}

// reconcileDataBitmap compares the data bitmap with the blocks referenced by
// valid inodes. The bitmap is only a cache of those references; in repair
// mode it is rebuilt from them.
func (c *checker) reconcileDataBitmap() StageReport {
	report := StageReport{Stage: StageDataBitmap}

	used := c.usedBlocks()
	for i := range used {
		marked := c.dataMap.Test(i)
		block := vsfs.DataBlock(i)

		var finding Finding
		switch {
		case marked && !used[i]:
			finding = Finding{Kind: KindBlockMarkedUnreferenced, Block: u32(block)}
			if c.repair {
				c.dataMap.Clear(i)
				finding.Repaired = true
			}
		case !marked && used[i]:
			finding = Finding{Kind: KindBlockReferencedUnmarked, Block: u32(block)}
			if c.repair {
				c.dataMap.Set(i)
				finding.Repaired = true
			}
		default:
			continue
		}

		if finding.Repaired {
			report.Fixed++
		}
		klog.V(3).InfoS("Data bitmap mismatch", "finding", finding.String(), "repaired", finding.Repaired)
		report.Findings = append(report.Findings, finding)
	}

	if report.Fixed > 0 {
		klog.V(3).InfoS("Fixed data bitmap", "count", report.Fixed)
	}
	return report
}
