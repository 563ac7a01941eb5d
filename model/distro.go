package model

// Distro identifies an execution platform referenced by name from build
// variants and task references. Project documents only ever carry the name;
// the metadata exists for callers assembling configurations in code.
type Distro struct {
	// Name is the distro identifier, e.g. "ubuntu2204-small".
	Name string
	// Arch is the processor architecture, e.g. "arm64".
	Arch string
	// Platform is the operating system, e.g. "linux".
	Platform string
}

// DistroNames collapses distros to their names for use in run_on lists and
// task references.
func DistroNames(distros ...Distro) []string {
	if len(distros) == 0 {
		return nil
	}
	names := make([]string, len(distros))
	for i, d := range distros {
		names[i] = d.Name
	}
	return names
}
