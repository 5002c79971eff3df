package models

// Project is the build model the generator runs against
type Project struct {
	GroupID    string
	ArtifactID string
	Version    string
	BaseDir    string // directory containing the project descriptor
	BuildDir   string // build output directory, target/ by default

	Dependencies       []Dependency
	CompileSourceRoots []string
}

// AddCompileSourceRoot registers a directory as input to downstream compilation
func (p *Project) AddCompileSourceRoot(root string) {
	for _, existing := range p.CompileSourceRoots {
		if existing == root {
			return
		}
	}
	p.CompileSourceRoots = append(p.CompileSourceRoots, root)
}
