package env

import (
	"fmt"
	"io"
)

// DoctorCheck represents a single dependency check
type DoctorCheck struct {
	Command  string // Command name
	Required bool   // true if required, false if optional
	Found    bool   // true if command is available
}

// DoctorResult holds the results of all checks
type DoctorResult struct {
	Target      string        // Target context (e.g., "hdfs")
	Checks      []DoctorCheck // All checks performed
	HasFailures bool          // true if any required check failed
}

// doctorTargets lists required and optional tools per command group.
// The relay container is reached through docker, so only the docker CLI
// is required for HDFS; database clients are optional debugging aids.
var doctorTargets = map[string]struct {
	required []string
	optional []string
}{
	"":          {required: []string{"docker"}, optional: []string{"psql", "cqlsh"}},
	"hdfs":      {required: []string{"docker"}},
	"dfs":       {required: []string{"docker"}},
	"postgres":  {optional: []string{"psql", "pg_isready"}},
	"cassandra": {optional: []string{"cqlsh", "nodetool"}},
	"setting":   {},
}

// RunDoctor performs dependency checking based on the target context
func RunDoctor(target string) *DoctorResult {
	return runDoctor(target, NewToolDetector())
}

func runDoctor(target string, detector *ToolDetector) *DoctorResult {
	deps, ok := doctorTargets[target]
	if !ok {
		// Unknown target: baseline check
		deps = doctorTargets[""]
	}

	result := &DoctorResult{
		Target: target,
	}

	for _, cmd := range deps.required {
		found := detector.IsInstalled(cmd)
		result.Checks = append(result.Checks, DoctorCheck{
			Command:  cmd,
			Required: true,
			Found:    found,
		})
		if !found {
			result.HasFailures = true
		}
	}

	for _, cmd := range deps.optional {
		result.Checks = append(result.Checks, DoctorCheck{
			Command:  cmd,
			Required: false,
			Found:    detector.IsInstalled(cmd),
		})
	}

	return result
}

// Print writes the doctor check results to w
func (dr *DoctorResult) Print(w io.Writer) {
	targetStr := "general"
	if dr.Target != "" {
		targetStr = dr.Target
	}

	fmt.Fprintf(w, "Doctor (%s):\n", targetStr)

	if len(dr.Checks) == 0 {
		fmt.Fprintln(w, "  OK   no external tools needed")
		return
	}

	for _, check := range dr.Checks {
		status := "OK  "
		msg := check.Command

		if !check.Found {
			if check.Required {
				status = "FAIL"
				msg = fmt.Sprintf("%s (required)", check.Command)
			} else {
				status = "WARN"
				msg = fmt.Sprintf("%s (optional)", check.Command)
			}
		}

		fmt.Fprintf(w, "  %s %s\n", status, msg)
	}
}

// ExitCode returns the appropriate exit code
// 0 if all required checks passed, 1 if any failed
func (dr *DoctorResult) ExitCode() int {
	if dr.HasFailures {
		return 1
	}
	return 0
}
