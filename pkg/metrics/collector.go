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

package metrics

import (
	"time"

	"github.com/minio/vsfsck/pkg/consts"
	"github.com/minio/vsfsck/pkg/fsck"
	"github.com/prometheus/client_golang/prometheus"
)

var statuses = []fsck.Status{fsck.StatusClean, fsck.StatusRepaired, fsck.StatusUnrepaired}

type resultCollector struct {
	result    *fsck.Result
	timestamp time.Time

	findingsDesc  *prometheus.Desc
	fixedDesc     *prometheus.Desc
	warningsDesc  *prometheus.Desc
	statusDesc    *prometheus.Desc
	timestampDesc *prometheus.Desc
}

func newResultCollector(result *fsck.Result, timestamp time.Time) *resultCollector {
	return &resultCollector{
		result:    result,
		timestamp: timestamp,
		findingsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.MetricsNamespace, "", "findings"),
			"Number of findings reported by a stage",
			[]string{"stage", "kind"}, nil),
		fixedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.MetricsNamespace, "", "fixed"),
			"Number of findings fixed by a stage",
			[]string{"stage"}, nil),
		warningsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.MetricsNamespace, "", "warnings"),
			"Number of I/O warnings raised during the run",
			nil, nil),
		statusDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.MetricsNamespace, "", "status"),
			"Outcome of the run; 1 for the current status, 0 otherwise",
			[]string{"status"}, nil),
		timestampDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.MetricsNamespace, "", "last_run_timestamp_seconds"),
			"Unix time of the run",
			nil, nil),
	}
}

// Describe sends the super set of all possible descriptors of metrics
func (c *resultCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.findingsDesc
	ch <- c.fixedDesc
	ch <- c.warningsDesc
	ch <- c.statusDesc
	ch <- c.timestampDesc
}

// Collect is called by Prometheus registry when collecting metrics.
func (c *resultCollector) Collect(ch chan<- prometheus.Metric) {
	for _, stage := range c.result.Stages {
		counts := map[fsck.Kind]int{}
		for _, finding := range stage.Findings {
			counts[finding.Kind]++
		}
		for _, kind := range fsck.Kinds {
			if count, found := counts[kind]; found {
				ch <- prometheus.MustNewConstMetric(
					c.findingsDesc, prometheus.GaugeValue, float64(count), string(stage.Stage), string(kind),
				)
			}
		}

		ch <- prometheus.MustNewConstMetric(c.fixedDesc, prometheus.GaugeValue, float64(stage.Fixed), string(stage.Stage))
	}

	ch <- prometheus.MustNewConstMetric(c.warningsDesc, prometheus.GaugeValue, float64(len(c.result.Warnings)))

	current := c.result.Status()
	for _, status := range statuses {
		value := 0.0
		if status == current {
			value = 1
		}
		ch <- prometheus.MustNewConstMetric(c.statusDesc, prometheus.GaugeValue, value, string(status))
	}

	ch <- prometheus.MustNewConstMetric(
		c.timestampDesc, prometheus.GaugeValue, float64(c.timestamp.UnixNano())/1e9,
	)
}
