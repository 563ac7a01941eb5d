package model

// Expansion is one key/value expansion passed to tasks at runtime.
type Expansion struct {
	Key   string
	Value string
}

// Expansions is an ordered set of expansions. Declaration order is preserved
// through parse and serialize.
type Expansions []Expansion

// Get returns the value for key and whether it is present.
func (e Expansions) Get(key string) (string, bool) {
	for i := len(e) - 1; i >= 0; i-- {
		if e[i].Key == key {
			return e[i].Value, true
		}
	}
	return "", false
}

// Set returns the expansions with key set to value, replacing an existing
// entry in place or appending a new one.
func (e Expansions) Set(key, value string) Expansions {
	for i := range e {
		if e[i].Key == key {
			e[i].Value = value
			return e
		}
	}
	return append(e, Expansion{Key: key, Value: value})
}

// DisplayTask groups execution tasks under a single display name in the UI.
type DisplayTask struct {
	Name           string
	ExecutionTasks []string
}

// BuildVariant binds a set of tasks to the execution environments they run
// on. Tasks and distros are referenced by name.
type BuildVariant struct {
	// Name uniquely identifies the build variant within a project.
	Name string
	// Tasks references the tasks to run in this variant.
	Tasks []TaskRef
	// DisplayName is the human-readable variant name.
	DisplayName string
	// RunOn names the distros tasks run on by default.
	RunOn []string
	// DisplayTasks groups execution tasks for display.
	DisplayTasks []DisplayTask
	// BatchTime is the interval, in minutes, between automatic runs.
	BatchTime int64
	// Expansions are passed to the variant's tasks at runtime.
	Expansions Expansions
	// Stepback reports whether failed tasks re-run on skipped versions.
	Stepback *bool
	// Modules names the modules included in this variant's tasks.
	Modules []string
}
