// Package report aggregates scenario outcomes across suites.
package report

// FailedScenario holds information about a single failed scenario.
type FailedScenario struct {
	Suite    string // Suite name the scenario belongs to
	Scenario string // Scenario name
	Reason   string // Failure reason/error message
}

// Counts holds aggregated scenario result counts.
type Counts struct {
	Passed   int
	Failed   int
	Total    int
	Diags    int // tolerated category mismatches under the any policy
	Failures []FailedScenario
}

// Pass records a passing scenario.
func (c *Counts) Pass() {
	c.Passed++
	c.Total++
}

// Fail records a failing scenario with its reason.
func (c *Counts) Fail(suite, scenario, reason string) {
	c.Failed++
	c.Total++
	c.Failures = append(c.Failures, FailedScenario{
		Suite:    suite,
		Scenario: scenario,
		Reason:   reason,
	})
}

// Diag records a tolerated diagnostic.
func (c *Counts) Diag() {
	c.Diags++
}

// Add aggregates another Counts into this one.
func (c *Counts) Add(other *Counts) {
	if other == nil {
		return
	}
	c.Passed += other.Passed
	c.Failed += other.Failed
	c.Total += other.Total
	c.Diags += other.Diags
	c.Failures = append(c.Failures, other.Failures...)
}

// Ok reports whether every scenario passed.
func (c *Counts) Ok() bool {
	return c.Failed == 0
}
