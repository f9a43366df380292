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

package consts

const (
	// AppName denotes application/library/plugin/tool name
	AppName = "vsfsck"

	// AppPrettyName denotes application/library/plugin/tool pretty name
	AppPrettyName = "VSFSCK"

	// AppCapsName denotes application/library/plugin/tool name in capital letters.
	AppCapsName = "VSFSCK"

	// EnvPrefix is the prefix of environment variables overriding flags.
	EnvPrefix = AppCapsName

	// BackupDirName is the directory under user's home holding bitmap backups.
	BackupDirName = "backup"

	// MetricsNamespace is the namespace of exported metrics.
	MetricsNamespace = AppName
)
