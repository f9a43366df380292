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

package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/minio/vsfsck/pkg/audit"
	"github.com/minio/vsfsck/pkg/fsck"
	"github.com/minio/vsfsck/pkg/image"
	"github.com/minio/vsfsck/pkg/metrics"
	"github.com/minio/vsfsck/pkg/vsfs"
	"k8s.io/klog/v2"
)

// report is the machine readable outcome of a run.
type report struct {
	RunID     string       `json:"runID"`
	Image     string       `json:"image"`
	Status    fsck.Status  `json:"status"`
	ExitCode  int          `json:"exitCode"`
	BackupDir string       `json:"backupDir,omitempty"`
	Result    *fsck.Result `json:"result"`
}

func runCheck(imagePath string) (int, error) {
	dev, err := image.Open(imagePath, repairFlag)
	if err != nil {
		return fsck.ExitOperational, fmt.Errorf("unable to open image %v; %w", imagePath, err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			klog.ErrorS(err, "unable to close image", "image", imagePath)
		}
	}()

	if size, err := dev.Size(); err != nil {
		klog.ErrorS(err, "unable to get image size", "image", imagePath)
	} else if size < vsfs.ImageSize {
		eprintf(quietFlag, false, "%v\n", color.HiYellowString(
			"image %v is %v; expected at least %v",
			imagePath, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(vsfs.ImageSize)),
		))
	}

	rep := report{
		RunID: uuid.New().String(),
		Image: imagePath,
	}

	opts := fsck.Options{Repair: repairFlag}
	if repairFlag && !noBackup {
		opts.BeforeWrite = func(original fsck.Bitmaps) error {
			dir, err := audit.SaveBitmaps(backupDir, rep.RunID, imagePath, original)
			if err != nil {
				return fmt.Errorf("unable to back up bitmaps; %w", err)
			}
			rep.BackupDir = dir
			return nil
		}
	}

	result := fsck.Check(dev, opts)
	rep.Result = result
	rep.Status = result.Status()
	rep.ExitCode = result.ExitCode()

	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile, result, time.Now()); err != nil {
			eprintf(quietFlag, true, "%v\n", err)
		}
	}

	if err := printer(rep); err != nil {
		return fsck.ExitOperational, err
	}

	return rep.ExitCode, nil
}
