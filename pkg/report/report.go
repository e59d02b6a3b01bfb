// Copyright 2025 the primeshift authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

// 📊 RuleOutcome is the terminal state of a single migration step
type RuleOutcome int

const (
	OutcomePending RuleOutcome = iota
	OutcomeNoop                // nothing matched
	OutcomeApplied             // approved and written
	OutcomeDeclined            // operator said no
	OutcomeFailed              // the step itself errored
)

// String returns a string representation of RuleOutcome
func (o RuleOutcome) String() string {
	switch o {
	case OutcomeNoop:
		return "no matches"
	case OutcomeApplied:
		return "applied"
	case OutcomeDeclined:
		return "declined"
	case OutcomeFailed:
		return "failed"
	default:
		return "pending"
	}
}

// 📄 StepResult records what happened to one rule
type StepResult struct {
	Rule         string
	Outcome      RuleOutcome
	FilesChanged int
	Matches      int
	Committed    bool
	Diagnostics  []string
	Err          error
}

// 📈 Summary aggregates a whole run
type Summary struct {
	Steps       []StepResult
	Diagnostics []string
	DryRun      bool
}

// Record appends a step result and folds its diagnostics into the run.
func (s *Summary) Record(r StepResult) {
	s.Steps = append(s.Steps, r)
	s.Diagnostics = append(s.Diagnostics, r.Diagnostics...)
}

// Counts returns how many steps were applied, declined, and no-ops.
func (s *Summary) Counts() (applied, declined, noop, failed int) {
	for _, st := range s.Steps {
		switch st.Outcome {
		case OutcomeApplied:
			applied++
		case OutcomeDeclined:
			declined++
		case OutcomeNoop:
			noop++
		case OutcomeFailed:
			failed++
		}
	}
	return
}

// FilesChanged sums changed files across all steps.
func (s *Summary) FilesChanged() int {
	n := 0
	for _, st := range s.Steps {
		n += st.FilesChanged
	}
	return n
}
