package main

import (
	"fmt"
	"io"

	"github.com/ttacon/chalk"

	"github.com/chazu/flatmesher/pkg/geom"
	"github.com/chazu/flatmesher/pkg/plan"
)

// consoleChecker prints validation progress and every problem as it is
// found, while collecting them in a plan.Report.
type consoleChecker struct {
	report *plan.Report
	w      io.Writer
	step   int
}

var _ plan.ErrorChecker = (*consoleChecker)(nil)

func newConsoleChecker(w io.Writer) *consoleChecker {
	return &consoleChecker{report: &plan.Report{}, w: w}
}

func (c *consoleChecker) progress(msg string) {
	fmt.Fprint(c.w, chalk.Yellow)
	fmt.Fprintf(c.w, "[%3d%%] %s", c.step*100/plan.PhaseCount, msg)
	fmt.Fprintln(c.w, chalk.Reset)
	c.step++
}

// problem prints the problem the report just recorded.
func (c *consoleChecker) problem(abort bool) bool {
	p := c.report.Problems[len(c.report.Problems)-1]
	fmt.Fprint(c.w, chalk.Red)
	fmt.Fprint(c.w, "       ", p.Kind, ": ", p.Message)
	fmt.Fprintln(c.w, chalk.Reset)
	return abort
}

// finish prints the summary and reports whether the plan is valid.
func (c *consoleChecker) finish() bool {
	c.step = plan.PhaseCount
	c.progress("Done")
	if c.report.OK() {
		fmt.Fprint(c.w, chalk.Green)
		fmt.Fprint(c.w, "No errors found.")
		fmt.Fprintln(c.w, chalk.Reset)
		return true
	}
	fmt.Fprint(c.w, chalk.Red)
	fmt.Fprintf(c.w, "%d errors found.", len(c.report.Problems))
	fmt.Fprintln(c.w, chalk.Reset)
	return false
}

func (c *consoleChecker) CheckBasicProperties() {
	c.progress("Checking basic properties")
	c.report.CheckBasicProperties()
}

func (c *consoleChecker) CheckSegmentsProperties() {
	c.progress("Checking segments properties")
	c.report.CheckSegmentsProperties()
}

func (c *consoleChecker) CheckPointsOrder() {
	c.progress("Checking points order")
	c.report.CheckPointsOrder()
}

func (c *consoleChecker) CheckRepeatedPoints() {
	c.progress("Checking repeated points")
	c.report.CheckRepeatedPoints()
}

func (c *consoleChecker) CheckSegmentsIntersections() {
	c.progress("Checking segments intersections")
	c.report.CheckSegmentsIntersections()
}

func (c *consoleChecker) InsufficientNodes(n int) bool {
	return c.problem(c.report.InsufficientNodes(n))
}

func (c *consoleChecker) InvalidTriangleSize(size float64) bool {
	return c.problem(c.report.InvalidTriangleSize(size))
}

func (c *consoleChecker) InvalidHeight(height float64) bool {
	return c.problem(c.report.InvalidHeight(height))
}

func (c *consoleChecker) InvalidSegmentLength(seg geom.Line2) bool {
	return c.problem(c.report.InvalidSegmentLength(seg))
}

func (c *consoleChecker) InvalidSegmentSlope(seg geom.Line2) bool {
	return c.problem(c.report.InvalidSegmentSlope(seg))
}

func (c *consoleChecker) NotCCWOrder() bool {
	return c.problem(c.report.NotCCWOrder())
}

func (c *consoleChecker) RepeatedPoint(p geom.Point2) bool {
	return c.problem(c.report.RepeatedPoint(p))
}

func (c *consoleChecker) IntersectingSegments(a, b geom.Line2) bool {
	return c.problem(c.report.IntersectingSegments(a, b))
}
