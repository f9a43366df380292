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
	"errors"
	"fmt"
	"path"

	"github.com/minio/vsfsck/pkg/consts"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errInvalidOutputFormat = errors.New("--output flag value must be one of table|json|yaml")

var (
	repairFlag   bool   // --repair flag
	outputFormat string // --output flag
	backupDir    string // --backup-dir flag
	noBackup     bool   // --no-backup flag
	metricsFile  string // --metrics-file flag
	quietFlag    bool   // --quiet flag
)

var printer func(report) error

func addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&repairFlag, "repair", repairFlag, "Write corrected bitmaps back to the image")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", outputFormat, "Output format. One of: table|json|yaml (default table)")
	cmd.PersistentFlags().StringVar(&backupDir, "backup-dir", backupDir, "Directory to save original bitmaps to before repair (default ~/."+consts.AppName+"/"+consts.BackupDirName+")")
	cmd.PersistentFlags().BoolVar(&noBackup, "no-backup", noBackup, "Do not save original bitmaps before repair")
	cmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", metricsFile, "Write run metrics in Prometheus text format to this file")
	cmd.PersistentFlags().BoolVar(&quietFlag, "quiet", quietFlag, "Suppress printing messages")

	cmd.Flags().SortFlags = false
	cmd.PersistentFlags().SortFlags = false
}

func getDefaultBackupDir() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return path.Join(homeDir, "."+consts.AppName, consts.BackupDirName), nil
}

// validateFlags reads flag values through viper so that VSFSCK_* environment
// variables apply, and validates them.
func validateFlags() error {
	repairFlag = viper.GetBool("repair")
	outputFormat = viper.GetString("output")
	backupDir = viper.GetString("backup-dir")
	noBackup = viper.GetBool("no-backup")
	metricsFile = viper.GetString("metrics-file")
	quietFlag = viper.GetBool("quiet")

	switch outputFormat {
	case "", "table":
		printer = printTable
	case "json":
		printer = printJSON
	case "yaml":
		printer = printYAML
	default:
		return errInvalidOutputFormat
	}

	if repairFlag && !noBackup && backupDir == "" {
		dir, err := getDefaultBackupDir()
		if err != nil {
			return fmt.Errorf("unable to get default backup directory; %w", err)
		}
		backupDir = dir
	}

	return nil
}
