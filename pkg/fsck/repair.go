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
	"errors"
	"fmt"

	"github.com/minio/vsfsck/pkg/image"
	"github.com/minio/vsfsck/pkg/vsfs"
	"go.uber.org/multierr"
	"k8s.io/klog/v2"
)

// ErrUnsafeBitmapLocation denotes a declared bitmap block which cannot be
// written without overwriting other metadata.
var ErrUnsafeBitmapLocation = errors.New("unsafe bitmap location")

// Bitmaps carries bitmap blocks together with their block numbers.
type Bitmaps struct {
	InodeBitmapBlock uint32
	InodeBitmap      []byte
	DataBitmapBlock  uint32
	DataBitmap       []byte
}

func checkBitmapLocations(sb *vsfs.SuperBlock) (err error) {
	check := func(name string, loc uint32) {
		switch {
		case loc >= vsfs.BlockCount:
			err = multierr.Append(err, fmt.Errorf("%w; %v block %v is beyond block count %v", ErrUnsafeBitmapLocation, name, loc, vsfs.BlockCount))
		case loc == vsfs.SuperBlockIndex:
			err = multierr.Append(err, fmt.Errorf("%w; %v block %v is the superblock", ErrUnsafeBitmapLocation, name, loc))
		case loc >= vsfs.InodeTableIndex && loc < vsfs.DataStartIndex:
			err = multierr.Append(err, fmt.Errorf("%w; %v block %v is inside the inode table", ErrUnsafeBitmapLocation, name, loc))
		}
	}

	check("inode bitmap", sb.InodeBitmapLoc)
	check("data bitmap", sb.DataBitmapLoc)
	if sb.InodeBitmapLoc == sb.DataBitmapLoc {
		err = multierr.Append(err, fmt.Errorf("%w; inode and data bitmaps share block %v", ErrUnsafeBitmapLocation, sb.InodeBitmapLoc))
	}
	return err
}

// writeBitmaps persists both bitmaps as full blocks at their declared
// positions, which must have passed checkBitmapLocations. It is the only code
// path writing to the image.
func (c *checker) writeBitmaps() (err error) {
	if !c.repair {
		return nil
	}

	if _, werr := image.WriteBlock(c.dev, c.sb.InodeBitmapLoc, c.inodeMap.Bytes()); werr != nil {
		err = multierr.Append(err, fmt.Errorf("unable to write inode bitmap; %w", werr))
	}
	if _, werr := image.WriteBlock(c.dev, c.sb.DataBitmapLoc, c.dataMap.Bytes()); werr != nil {
		err = multierr.Append(err, fmt.Errorf("unable to write data bitmap; %w", werr))
	}
	err = multierr.Append(err, c.dev.Sync())

	if err == nil {
		klog.V(3).InfoS("Saved bitmaps", "inodeBitmap", c.sb.InodeBitmapLoc, "dataBitmap", c.sb.DataBitmapLoc)
	}
	return err
}
