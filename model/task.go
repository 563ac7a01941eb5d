package model

// TaskDependency names another task that must finish before a task runs.
type TaskDependency struct {
	// Name of the task depended on.
	Name string
	// Variant restricts the dependency to the task run in that build variant.
	Variant string
}

// TaskRef references a task from a build variant, optionally pinning the
// distros it runs on there.
type TaskRef struct {
	Name    string
	Distros []string
}

// Task is a named unit of work built from an ordered list of commands.
//
// A dependency reference must name a task that exists in the project;
// checking that is the consumer's job, not the codec's.
type Task struct {
	// Name uniquely identifies the task within a project.
	Name string
	// Commands run in order when the task executes.
	Commands []Command
	// DependsOn lists tasks that must complete first.
	DependsOn []TaskDependency
	// ExecTimeoutSecs bounds the task's total run time, in seconds.
	ExecTimeoutSecs int64
	// Tags label the task for selection by variants and tag expressions.
	Tags []string
	// Priority orders the task in the scheduling queue. Zero is the default.
	Priority int64
	// Patchable reports whether the task may run in patch builds.
	Patchable *bool
	// Stepback reports whether skipped versions of the task run on failure.
	Stepback *bool
}

// Reference returns a reference to this task for inclusion in a build
// variant, pinned to the given distros if any are named.
func (t *Task) Reference(distros ...string) TaskRef {
	ref := TaskRef{Name: t.Name}
	if len(distros) > 0 {
		ref.Distros = distros
	}
	return ref
}
