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

// Package fsck checks and repairs the consistency of a VSFS image.
//
// A run loads the superblock, both allocation bitmaps and the inode table,
// validates the superblock geometry, reconciles the inode and data bitmaps
// against the inode table, audits data block ownership and, in repair mode,
// writes the corrected bitmaps back. Every stage runs regardless of what
// earlier stages found.
package fsck

import (
	"github.com/minio/vsfsck/pkg/image"
	"github.com/minio/vsfsck/pkg/vsfs"
	"k8s.io/klog/v2"
)

// Status denotes the overall outcome of a run.
type Status string

// Run outcomes.
const (
	StatusClean      Status = "clean"
	StatusRepaired   Status = "repaired"
	StatusUnrepaired Status = "unrepaired"
)

// Exit codes as used by fsck(8).
const (
	ExitClean       = 0
	ExitCorrected   = 1
	ExitUncorrected = 4
	ExitOperational = 8
)

// Options configures a run.
type Options struct {
	// Repair enables persisting corrected bitmaps.
	Repair bool

	// BeforeWrite, if set, is called with the bitmaps as loaded from the
	// image before anything is written. An error skips the write.
	BeforeWrite func(original Bitmaps) error
}

// StageReport holds the findings of one stage.
type StageReport struct {
	Stage    Stage     `json:"stage"`
	Findings []Finding `json:"findings"`
	Fixed    int       `json:"fixed"`
}

// Stats summarizes what the run looked at.
type Stats struct {
	InodesChecked    int `json:"inodesChecked"`
	ValidInodes      int `json:"validInodes"`
	ReferencedBlocks int `json:"referencedBlocks"`
	MarkedInodes     int `json:"markedInodes"`
	MarkedBlocks     int `json:"markedBlocks"`
}

// Result is the outcome of a run.
type Result struct {
	Repair     bool            `json:"repair"`
	Written    bool            `json:"written"`
	SuperBlock vsfs.SuperBlock `json:"superBlock"`
	Stats      Stats           `json:"stats"`
	Stages     []StageReport   `json:"stages"`
	Warnings   []Warning       `json:"warnings,omitempty"`
}

// Findings returns findings of all stages in run order.
func (r *Result) Findings() (findings []Finding) {
	for _, stage := range r.Stages {
		findings = append(findings, stage.Findings...)
	}
	return findings
}

// Fixed returns the number of findings fixed and written to the image.
func (r *Result) Fixed() (fixed int) {
	for _, stage := range r.Stages {
		fixed += stage.Fixed
	}
	return fixed
}

// Status returns clean when nothing was found, repaired when every finding
// was fixed and persisted, and unrepaired otherwise.
func (r *Result) Status() Status {
	findings := r.Findings()
	if len(findings) == 0 {
		return StatusClean
	}
	if !r.Written {
		return StatusUnrepaired
	}
	for _, finding := range findings {
		if !finding.Repaired {
			return StatusUnrepaired
		}
	}
	return StatusRepaired
}

// ExitCode maps Status to an fsck(8) exit code.
func (r *Result) ExitCode() int {
	switch r.Status() {
	case StatusClean:
		return ExitClean
	case StatusRepaired:
		return ExitCorrected
	default:
		return ExitUncorrected
	}
}

// Check runs all stages against dev. It always completes; short reads and
// failed writes are reported as warnings in the result.
func Check(dev image.Device, opts Options) *Result {
	c := &checker{dev: dev, repair: opts.Repair}

	klog.V(3).InfoS("Checking superblock")
	c.loadSuperBlock()

	result := &Result{Repair: opts.Repair, SuperBlock: *c.sb}
	result.Stages = append(result.Stages, StageReport{
		Stage:    StageSuperBlock,
		Findings: validateSuperBlock(c.sb),
	})

	c.loadMetadata()
	original := Bitmaps{
		InodeBitmapBlock: c.sb.InodeBitmapLoc,
		InodeBitmap:      c.inodeMap.Bytes(),
		DataBitmapBlock:  c.sb.DataBitmapLoc,
		DataBitmap:       c.dataMap.Bytes(),
	}
	result.Stats = c.stats()

	klog.V(3).InfoS("Checking inode bitmap")
	result.Stages = append(result.Stages, c.reconcileInodeBitmap())

	klog.V(3).InfoS("Checking data bitmap")
	result.Stages = append(result.Stages, c.reconcileDataBitmap())

	klog.V(3).InfoS("Checking block references")
	result.Stages = append(result.Stages, c.auditBlockOwnership())

	if opts.Repair {
		err := checkBitmapLocations(c.sb)
		if err == nil && opts.BeforeWrite != nil {
			err = opts.BeforeWrite(original)
		}
		if err == nil {
			err = c.writeBitmaps()
		}
		if err != nil {
			c.warn("write", "bitmaps", err)
			result.discardRepairs()
		} else {
			result.Written = true
		}
	}

	result.Warnings = c.warnings
	return result
}

// discardRepairs unmarks findings fixed only in memory.
func (r *Result) discardRepairs() {
	for i := range r.Stages {
		r.Stages[i].Fixed = 0
		for j := range r.Stages[i].Findings {
			r.Stages[i].Findings[j].Repaired = false
		}
	}
}

func (c *checker) stats() (stats Stats) {
	stats.InodesChecked = len(c.inodes)
	for i := range c.inodes {
		if c.inodes[i].IsValid() {
			stats.ValidInodes++
		}
	}
	for _, used := range c.usedBlocks() {
		if used {
			stats.ReferencedBlocks++
		}
	}
	stats.MarkedInodes = c.inodeMap.Count(len(c.inodes))
	stats.MarkedBlocks = c.dataMap.Count(vsfs.DataBlocks)
	return stats
}
