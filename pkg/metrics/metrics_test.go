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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minio/vsfsck/pkg/fsck"
	"github.com/prometheus/client_golang/prometheus/testutil"
	clientmodelgo "github.com/prometheus/client_model/go"
)

var testTime = time.Unix(1700000000, 0)

func testResult() *fsck.Result {
	return &fsck.Result{
		Stages: []fsck.StageReport{
			{Stage: fsck.StageSuperBlock},
			{
				Stage: fsck.StageInodeBitmap,
				Findings: []fsck.Finding{
					{Kind: fsck.KindInodeMarkedInvalid},
					{Kind: fsck.KindInodeMarkedInvalid},
				},
				Fixed: 0,
			},
			{Stage: fsck.StageDataBitmap},
			{
				Stage:    fsck.StageBlockReferences,
				Findings: []fsck.Finding{{Kind: fsck.KindDuplicateClaim}},
			},
		},
		Warnings: []fsck.Warning{{Op: "read", Target: "data bitmap", Message: "short read"}},
	}
}

func TestCollectFindings(t *testing.T) {
	expected := `
# HELP vsfsck_findings Number of findings reported by a stage
# TYPE vsfsck_findings gauge
vsfsck_findings{kind="duplicate-claim",stage="block-references"} 1
vsfsck_findings{kind="inode-marked-but-invalid",stage="inode-bitmap"} 2
# HELP vsfsck_status Outcome of the run; 1 for the current status, 0 otherwise
# TYPE vsfsck_status gauge
vsfsck_status{status="clean"} 0
vsfsck_status{status="repaired"} 0
vsfsck_status{status="unrepaired"} 1
# HELP vsfsck_warnings Number of I/O warnings raised during the run
# TYPE vsfsck_warnings gauge
vsfsck_warnings 1
`
	collector := newResultCollector(testResult(), testTime)
	if err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"vsfsck_findings", "vsfsck_status", "vsfsck_warnings"); err != nil {
		t.Fatal(err)
	}

	// one fixed gauge per stage
	if count := testutil.CollectAndCount(collector, "vsfsck_fixed"); count != len(fsck.Stages) {
		t.Fatalf("fixed metrics: expected: %v, got: %v", len(fsck.Stages), count)
	}
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry(&fsck.Result{}, testTime)
	if err != nil {
		t.Fatal(err)
	}
	families, err := registry.Gather()
	if err != nil {
		t.Fatal(err)
	}

	gauge := func(name string, labels map[string]string) *clientmodelgo.Gauge {
		for _, family := range families {
			if family.GetName() != name {
				continue
			}
		metrics:
			for _, metric := range family.GetMetric() {
				for _, lp := range metric.GetLabel() {
					if labels[lp.GetName()] != lp.GetValue() {
						continue metrics
					}
				}
				return metric.GetGauge()
			}
		}
		return nil
	}

	testCases := []struct {
		name     string
		labels   map[string]string
		expected float64
	}{
		{"vsfsck_status", map[string]string{"status": "clean"}, 1},
		{"vsfsck_status", map[string]string{"status": "unrepaired"}, 0},
		{"vsfsck_warnings", nil, 0},
		{"vsfsck_last_run_timestamp_seconds", nil, 1700000000},
	}
	for i, testCase := range testCases {
		g := gauge(testCase.name, testCase.labels)
		if g == nil {
			t.Fatalf("case %v: metric %v not found", i+1, testCase.name)
		}
		if g.GetValue() != testCase.expected {
			t.Fatalf("case %v: expected: %v, got: %v", i+1, testCase.expected, g.GetValue())
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "vsfsck.prom")
	if err := WriteTextfile(filename, testResult(), testTime); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	for i, line := range []string{
		`vsfsck_status{status="unrepaired"} 1`,
		`vsfsck_warnings 1`,
		`vsfsck_fixed{stage="superblock"} 0`,
	} {
		if !strings.Contains(string(data), line) {
			t.Fatalf("case %v: %q not found in %v", i+1, line, string(data))
		}
	}

	if err := WriteTextfile(filepath.Join(filename, "missing", "x.prom"), testResult(), testTime); err == nil {
		t.Fatalf("expected error, but succeeded")
	}
}
