package models

// FactoryFileName is the file name of every emitted import factory
const FactoryFileName = "ImportFactory.java"

// Factory represents one import factory to be emitted
type Factory struct {
	TargetPackage string   // package the factory class is declared in
	Packages      []string // packages listed in @Import, sorted and unique
	Path          string   // path of the written file, set after emission
}

// GenerationSummary contains information about a completed run
type GenerationSummary struct {
	DependenciesMatched int
	PackagesDiscovered  int
	PackagesFiltered    int
	CompileSourceRoots  []string
	GeneratedFiles      []string // paths written, or that would be written on a dry run
	DryRun              bool
}
