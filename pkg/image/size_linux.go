//go:build linux

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
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
	"k8s.io/klog/v2"
)

// blockDeviceSize reads the device size with BLKGETSIZE64, which fills a
// 64-bit unsigned integer on every architecture.
func blockDeviceSize(file *os.File) (int64, error) {
	var size uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, file.Fd(), unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&size)))
	if errno != 0 {
		klog.Errorf("could not obtain size of block device: %s", file.Name())
		return 0, os.NewSyscallError("BLKGETSIZE64", errno)
	}
	return int64(size), nil
}
