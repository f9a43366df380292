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

// Package audit saves the original bitmap blocks of an image before they are
// overwritten by a repair.
package audit

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sha256 "github.com/minio/sha256-simd"
	"github.com/minio/vsfsck/pkg/fsck"
	"github.com/minio/vsfsck/pkg/utils"
	"k8s.io/klog/v2"
)

// ManifestFile is the name of the manifest inside a backup directory.
const ManifestFile = "manifest.yaml"

// BlockBackup describes one saved block.
type BlockBackup struct {
	Name   string `json:"name"`
	Block  uint32 `json:"block"`
	File   string `json:"file"`
	SHA256 string `json:"sha256"`
}

// Manifest describes a backup.
type Manifest struct {
	RunID     string        `json:"runID"`
	Image     string        `json:"image"`
	CreatedAt time.Time     `json:"createdAt"`
	Blocks    []BlockBackup `json:"blocks"`
}

// Checksum returns the hex encoded SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SaveBitmaps writes both bitmap blocks and a manifest to dir/runID and
// returns that directory.
func SaveBitmaps(dir, runID, imagePath string, bitmaps fsck.Bitmaps) (string, error) {
	backupDir := filepath.Join(dir, runID)
	if err := os.MkdirAll(backupDir, 0o700); err != nil {
		return "", fmt.Errorf("unable to create backup directory; %w", err)
	}

	manifest := Manifest{
		RunID:     runID,
		Image:     imagePath,
		CreatedAt: time.Now().UTC(),
	}

	blocks := []struct {
		name  string
		block uint32
		data  []byte
	}{
		{"inode-bitmap", bitmaps.InodeBitmapBlock, bitmaps.InodeBitmap},
		{"data-bitmap", bitmaps.DataBitmapBlock, bitmaps.DataBitmap},
	}
	for _, b := range blocks {
		filename := b.name + ".blk"
		if err := utils.WriteFile(filepath.Join(backupDir, filename), b.data); err != nil {
			return "", fmt.Errorf("unable to save %v; %w", b.name, err)
		}
		manifest.Blocks = append(manifest.Blocks, BlockBackup{
			Name:   b.name,
			Block:  b.block,
			File:   filename,
			SHA256: Checksum(b.data),
		})
	}

	data, err := utils.ToYAML(manifest)
	if err != nil {
		return "", err
	}
	if err := utils.WriteFile(filepath.Join(backupDir, ManifestFile), []byte(data)); err != nil {
		return "", fmt.Errorf("unable to save manifest; %w", err)
	}

	klog.V(3).InfoS("Saved bitmap backup", "dir", backupDir, "image", imagePath)
	return backupDir, nil
}
