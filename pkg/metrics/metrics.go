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

// Package metrics exports the outcome of a check as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/minio/vsfsck/pkg/fsck"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"
)

// NewRegistry returns a registry exposing result.
func NewRegistry(result *fsck.Result, timestamp time.Time) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(newResultCollector(result, timestamp)); err != nil {
		return nil, err
	}
	return registry, nil
}

// WriteTextfile writes result in the text exposition format to filename, for
// node exporter's textfile collector.
func WriteTextfile(filename string, result *fsck.Result, timestamp time.Time) error {
	registry, err := NewRegistry(result, timestamp)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(filename, registry); err != nil {
		return fmt.Errorf("unable to write metrics to %v; %w", filename, err)
	}
	klog.V(3).InfoS("Wrote metrics", "file", filename)
	return nil
}
