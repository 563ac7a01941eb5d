// Package model defines the typed shape of an Evergreen project
// configuration document. All types are plain data: construction with every
// field defaulted is the zero value, equality is structural, and no type
// carries parsing or serialization logic. Cross-entity validation, such as
// resolving dependency references, is the consumer's responsibility.
package model

// Module is an additional repository included in a project checkout.
type Module struct {
	// Name of the module.
	Name string
	// Repo is the repository containing the module.
	Repo string
	// Branch of the repository to use.
	Branch string
	// Prefix is the path the module code is placed at.
	Prefix string
}

// Parameter customizes patch build behavior.
type Parameter struct {
	// Key names the parameter.
	Key string
	// Value is the default value.
	Value string
	// Description explains the parameter.
	Description string
}

// Function is a named, reusable command sequence invoked by reference from
// tasks.
type Function struct {
	// Name uniquely identifies the function within a project.
	Name string
	// Commands run in order when the function is called.
	Commands []Command
}

// Project is the root of a configuration document.
//
// Functions are kept in declaration order; serialization preserves that
// order. Task, function and build variant names are unique within a project
// by convention of the document format, not enforced here.
//
// The Pre, Post and Timeout hooks are tri-state: a nil slice means the hook
// is absent from the document while a non-nil empty slice means it is
// declared empty. Every other collection treats absent and empty as
// equivalent.
type Project struct {
	// BuildVariants lists the project's build variants, in order.
	BuildVariants []BuildVariant
	// Tasks lists the task definitions, in order.
	Tasks []Task
	// TaskGroups lists the task group definitions, in order.
	TaskGroups []TaskGroup
	// Functions lists the function definitions, in declaration order.
	Functions []Function

	// Pre runs at the start of every task.
	Pre []Command
	// Post runs at the end of every task.
	Post []Command
	// Timeout runs whenever a task hits a timeout.
	Timeout []Command

	// Modules lists additional repositories to include.
	Modules []Module
	// Stepback reports whether skipped tasks run on failures.
	Stepback *bool
	// PreErrorFailsTask makes failures in Pre fail the task.
	PreErrorFailsTask *bool
	// OOMTracker enables out-of-memory failure tracking.
	OOMTracker *bool
	// CommandType is the default failure classification for commands.
	CommandType CommandType
	// Ignore lists file globs whose changes do not trigger builds.
	Ignore []string
	// Parameters customize patch build behavior.
	Parameters []Parameter
}

// Function returns the named function and whether it exists.
func (p *Project) Function(name string) (Function, bool) {
	for _, f := range p.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}

// Task returns the named task and whether it exists.
func (p *Project) Task(name string) (Task, bool) {
	for _, t := range p.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}

// BuildVariant returns the named build variant and whether it exists.
func (p *Project) BuildVariant(name string) (BuildVariant, bool) {
	for _, bv := range p.BuildVariants {
		if bv.Name == name {
			return bv, true
		}
	}
	return BuildVariant{}, false
}

// TaskGroup returns the named task group and whether it exists.
func (p *Project) TaskGroup(name string) (TaskGroup, bool) {
	for _, tg := range p.TaskGroups {
		if tg.Name == name {
			return tg, true
		}
	}
	return TaskGroup{}, false
}
