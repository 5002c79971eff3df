package cli

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/toyz/importgen/internal/archive"
	"github.com/toyz/importgen/internal/discovery"
	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/filter"
	"github.com/toyz/importgen/internal/generator"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/project"
	"github.com/toyz/importgen/internal/resolver"
	"github.com/toyz/importgen/internal/utils"
)

// Generator coordinates a generation run: project loading, discovery and
// factory emission
type Generator struct {
	diagnostics *utils.DiagnosticSystem
	locator     *ProjectLocator
	loader      *project.Loader
	scanner     discovery.ArchiveScanner
	httpClient  *http.Client
	resolver    resolver.Resolver // replaces the configured chain when set
	newEmitter  func(outputDir string) generator.FactoryEmitter
	project     *models.Project
	summary     models.GenerationSummary
}

// NewGenerator creates a new CLI generator logging to diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	return &Generator{
		diagnostics: diagnostics,
		locator:     NewProjectLocator(),
		loader:      project.NewLoader(),
		scanner:     archive.NewScanner(),
		newEmitter:  newFileEmitter,
	}
}

func newFileEmitter(outputDir string) generator.FactoryEmitter {
	return generator.NewEmitter(outputDir)
}

// SetResolver makes every run resolve archives through r instead of the
// repositories named in the configuration
func (g *Generator) SetResolver(r resolver.Resolver) {
	g.resolver = r
}

// SetEmitterFactory replaces how factories are rendered and written for an
// output directory
func (g *Generator) SetEmitterFactory(newEmitter func(outputDir string) generator.FactoryEmitter) {
	g.newEmitter = newEmitter
}

// SetHTTPClient sets the client used for remote repositories
func (g *Generator) SetHTTPClient(client *http.Client) {
	g.httpClient = client
}

// GetSummary returns the generation summary of the last run
func (g *Generator) GetSummary() models.GenerationSummary {
	return g.summary
}

// Project returns the project model of the last run
func (g *Generator) Project() *models.Project {
	return g.project
}

// Run executes the complete generation process
func (g *Generator) Run(ctx context.Context, cfg Config) error {
	startTime := time.Now()
	g.summary = models.GenerationSummary{DryRun: cfg.DryRun}

	// patterns are compiled before anything touches a repository
	filters, err := filter.Compile(cfg.Filters)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	proj, err := g.loadProject(cfg)
	if err != nil {
		return err
	}
	g.project = proj

	outputDir := g.outputDir(cfg, proj)
	if cfg.AddCompileSourceRoot {
		proj.AddCompileSourceRoot(outputDir)
		g.diagnostics.Verbose("Added compile source root %s", outputDir)
	}
	g.summary.CompileSourceRoots = proj.CompileSourceRoots

	res, err := g.buildResolver(cfg)
	if err != nil {
		return err
	}

	result, err := discovery.New(res, g.scanner, g.diagnostics).Discover(ctx, proj.Dependencies, filters)
	if err != nil {
		return err
	}
	g.summary.DependenciesMatched = len(result.MatchedDependencies)
	g.summary.PackagesDiscovered = len(result.Discovered)
	g.summary.PackagesFiltered = len(result.Packages)

	if len(result.Packages) == 0 {
		g.diagnostics.Warn("No packages left after filtering; nothing to generate")
	}

	plan := generator.Plan(cfg.TargetPackage, result.Packages)
	emitter := g.newEmitter(outputDir)

	if cfg.DryRun {
		if err := g.preview(emitter, plan); err != nil {
			return err
		}
	} else {
		emitted, err := emitter.EmitAll(plan)
		for _, factory := range emitted {
			g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, factory.Path)
			g.diagnostics.Verbose("Wrote %s", factory.Path)
		}
		if err != nil {
			return err
		}
	}

	g.diagnostics.Debug("Generation finished in %s", time.Since(startTime))
	return nil
}

// preview renders the plan without writing it
func (g *Generator) preview(emitter generator.FactoryEmitter, plan []models.Factory) error {
	for _, factory := range plan {
		path, err := emitter.FactoryPath(factory.TargetPackage)
		if err != nil {
			return err
		}
		content, err := emitter.Render(factory.TargetPackage, factory.Packages)
		if err != nil {
			return err
		}

		g.diagnostics.Info("Would write %s", path)
		g.diagnostics.Verbose("%s", content)
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
	}
	return nil
}

// Clean removes the factories generated into the configured output directory
func (g *Generator) Clean(cfg Config) ([]string, error) {
	outputDir := cfg.resolvePath(cfg.OutputDir)
	if outputDir == "" {
		proj, err := g.loadProject(cfg)
		if err != nil {
			return nil, err
		}
		outputDir = g.outputDir(cfg, proj)
	}

	removed, err := NewCleaner().CleanGeneratedFiles(outputDir)
	for _, path := range removed {
		g.diagnostics.Verbose("Removed %s", path)
	}
	return removed, err
}

// loadProject reads the descriptor, if any, and appends -dependency entries
func (g *Generator) loadProject(cfg Config) (*models.Project, error) {
	extra, err := project.ParseDependencies(cfg.Dependencies)
	if err != nil {
		return nil, err
	}

	pomPath, found, err := g.locator.Locate(cfg.resolvePath(cfg.POM), cfg.WorkDir)
	if err != nil {
		return nil, errors.WrapConfigurationError("pom", cfg.POM, err)
	}

	var proj *models.Project
	switch {
	case found:
		proj, err = g.loader.Load(pomPath)
		if err != nil {
			return nil, err
		}
		g.diagnostics.Verbose("Loaded project %s:%s:%s from %s", proj.GroupID, proj.ArtifactID, proj.Version, pomPath)
	case len(extra) > 0:
		workDir := cfg.WorkDir
		if workDir == "" {
			if workDir, err = os.Getwd(); err != nil {
				return nil, errors.WrapFileSystemError("resolve", ".", err)
			}
		}
		proj = project.FromDependencies(workDir, nil)
	default:
		return nil, errors.ConfigurationError("pom", "no pom.xml found and no -dependency given").
			WithSuggestion("Run inside a Maven project, pass -pom, or list artifacts with -dependency group:artifact:version")
	}

	proj.Dependencies = append(proj.Dependencies, extra...)
	return proj, nil
}

func (g *Generator) outputDir(cfg Config, proj *models.Project) string {
	if cfg.OutputDir != "" {
		return cfg.resolvePath(cfg.OutputDir)
	}
	return filepath.Join(proj.BuildDir, filepath.FromSlash(DefaultOutputSubdir))
}

func (g *Generator) buildResolver(cfg Config) (resolver.Resolver, error) {
	if g.resolver != nil {
		return g.resolver, nil
	}
	return BuildResolver(cfg, g.httpClient)
}

// BuildResolver assembles the repositories named by cfg: the local
// repository first, then remote repositories in order, then the S3 bucket.
// Lookups are memoized for the lifetime of the returned resolver.
func BuildResolver(cfg Config, client *http.Client) (resolver.Resolver, error) {
	root := cfg.resolvePath(cfg.LocalRepository)
	if root == "" {
		defaultRoot, err := resolver.DefaultLocalRepositoryPath()
		if err != nil {
			return nil, errors.WrapConfigurationError("localRepository", "", err)
		}
		root = defaultRoot
	}

	local := resolver.NewLocalRepository(root)
	resolvers := []resolver.Resolver{local}
	for _, baseURL := range cfg.RemoteRepositories {
		resolvers = append(resolvers, resolver.NewRemoteRepository(baseURL, local, client))
	}

	if cfg.S3.Bucket != "" {
		bucket, err := resolver.NewS3Repository(cfg.S3, local)
		if err != nil {
			return nil, errors.WrapConfigurationError("s3", cfg.S3.Bucket, err)
		}
		resolvers = append(resolvers, bucket)
	}

	cached, err := resolver.NewCached(resolver.NewChain(resolvers...), resolver.DefaultCacheSize)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "failed to create resolution cache", err)
	}
	return cached, nil
}
