package framework

// TestStatus describes how a finished, non-skipped test ended.
type TestStatus struct {
	Failed      bool
	Quarantined bool
}

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, status TestStatus, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                              {}
func (n nullTestLogger) TestError(TestID, error)                         {}
func (n nullTestLogger) TestFinished(TestID, TestStatus, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                      {}
