package framework

// TestLogger receives notifications about the progress of a test run, so that the runner can
// report them as they happen.
type TestLogger interface {
	TestStarted(id TestID)
	// TestError is called for each failure, at the time it happens.
	TestError(id TestID, err error)
	// TestFinished receives the test's captured debug output, which the logger may choose to show.
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}
