package observability

import (
	"testing"
	"time"

	"github.com/danmuck/cmdspec/internal/testutil/testlog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("specd.test", "POST", "/tools/tar/build", 200, 3*time.Millisecond)
	RecordToolBuild("specd.test", "tar")
	RecordToolRun("specd.test", "tar", 0, 40*time.Millisecond)
	RecordToolRun("specd.test", "tar", 2, 12*time.Millisecond)
}
