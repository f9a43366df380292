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
	"k8s.io/klog/v2"
)

// reconcileInodeBitmap compares the inode bitmap with inode validity. The
// inode table is ground truth; in repair mode the bitmap is made to match it.
func (c *checker) reconcileInodeBitmap() StageReport {
	report := StageReport{Stage: StageInodeBitmap}

	for i := range c.inodes {
		marked := c.inodeMap.Test(i)
		valid := c.inodes[i].IsValid()

		var finding Finding
		switch {
		case marked && !valid:
			finding = Finding{Kind: KindInodeMarkedInvalid, Inode: u32(uint32(i))}
			if c.repair {
				c.inodeMap.Clear(i)
				finding.Repaired = true
			}
		case !marked && valid:
			finding = Finding{Kind: KindInodeUnmarkedValid, Inode: u32(uint32(i))}
			if c.repair {
				c.inodeMap.Set(i)
				finding.Repaired = true
			}
		default:
			continue
		}

		if finding.Repaired {
			report.Fixed++
		}
		klog.V(3).InfoS("Inode bitmap mismatch", "finding", finding.String(), "repaired", finding.Repaired)
		report.Findings = append(report.Findings, finding)
	}

	if report.Fixed > 0 {
		klog.V(3).InfoS("Fixed inode bitmap", "count", report.Fixed)
	}
	return report
}
