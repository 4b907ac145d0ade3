// Package support provides the godog step definitions for the CLI features.
package support

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/MeKo-Tech/lapse/cmd/lapse/cmd"
)

// TestContext carries state between the steps of one scenario.
type TestContext struct {
	output  string
	lastErr error
}

// NewTestContext creates a fresh context for a scenario.
func NewTestContext() *TestContext {
	return &TestContext{}
}

// RegisterSteps wires the step definitions into the scenario.
func (tc *TestContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I run lapse with arguments "([^"]*)"$`, tc.iRunLapseWithArguments)
	sc.Step(`^the command should succeed$`, tc.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, tc.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, tc.theOutputShouldContain)
	sc.Step(`^the output should report (\d+) stopwatches$`, tc.theOutputShouldReportStopwatches)
}

// iRunLapseWithArguments executes the CLI in-process with the given arguments.
func (tc *TestContext) iRunLapseWithArguments(arguments string) error {
	root := cmd.GetRootCommand()

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(strings.Fields(arguments))

	tc.lastErr = root.Execute()
	tc.output = buf.String()
	return nil
}

func (tc *TestContext) theCommandShouldSucceed() error {
	if tc.lastErr != nil {
		return fmt.Errorf("expected success, got error: %w (output: %s)", tc.lastErr, tc.output)
	}
	return nil
}

func (tc *TestContext) theCommandShouldFail() error {
	if tc.lastErr == nil {
		return fmt.Errorf("expected failure, command succeeded (output: %s)", tc.output)
	}
	return nil
}

func (tc *TestContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(tc.output, expected) {
		return fmt.Errorf("output does not contain %q:\n%s", expected, tc.output)
	}
	return nil
}

func (tc *TestContext) theOutputShouldReportStopwatches(count int) error {
	return tc.theOutputShouldContain(fmt.Sprintf("%d stopwatches", count))
}
