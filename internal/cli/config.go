package cli

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/filter"
	"github.com/toyz/importgen/internal/resolver"
	"github.com/toyz/importgen/internal/utils"
)

// EnvPrefix prefixes every environment variable read into a Config
const EnvPrefix = "IMPORTGEN_"

// DefaultOutputSubdir is where factories go below the build directory
const DefaultOutputSubdir = "generated-sources/plugin"

// Config holds the configuration for a generator run
type Config struct {
	// POM is the project descriptor. When empty, pom.xml is searched for
	// from WorkDir upwards.
	POM string

	// Dependencies are extra group:artifact:version[:type[:classifier]]
	// coordinates appended to the project's dependencies
	Dependencies []string

	// OutputDir receives the generated factories. Defaults to
	// <build directory>/generated-sources/plugin.
	OutputDir string

	// AddCompileSourceRoot registers OutputDir with the project model
	AddCompileSourceRoot bool

	// Filters are the dependency and package regular expressions
	Filters filter.Patterns

	// TargetPackage selects aggregation mode when set
	TargetPackage string

	// LocalRepository is the Maven repository root, ~/.m2/repository by default
	LocalRepository string

	// RemoteRepositories are HTTP(S) Maven repositories tried after the local one
	RemoteRepositories []string

	// S3 configures an optional bucket repository tried last
	S3 resolver.S3Config

	// WorkDir anchors relative paths and the descriptor search
	WorkDir string

	Clean   bool
	DryRun  bool
	Verbose bool
	Quiet   bool
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		AddCompileSourceRoot: true,
		Filters:              filter.DefaultPatterns(),
		S3: resolver.S3Config{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.WrapConfigurationError("env-file", path, err)
	}
	return nil
}

// LoadEnv loads the dotenv file at dotEnvPath and returns DefaultConfig
// overridden by the IMPORTGEN_* variables lookup reports
func LoadEnv(dotEnvPath string, lookup func(string) (string, bool)) (Config, error) {
	if err := LoadDotEnv(dotEnvPath); err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from variables returned by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(value), true
	}

	strs := map[string]*string{
		"POM":                  &c.POM,
		"OUTPUT_DIR":           &c.OutputDir,
		"INCLUDE_DEPENDENCIES": &c.Filters.IncludeDependencies,
		"EXCLUDE_DEPENDENCIES": &c.Filters.ExcludeDependencies,
		"INCLUDE_PACKAGES":     &c.Filters.IncludePackages,
		"EXCLUDE_PACKAGES":     &c.Filters.ExcludePackages,
		"TARGET_PACKAGE":       &c.TargetPackage,
		"LOCAL_REPOSITORY":     &c.LocalRepository,
		"S3_ENDPOINT":          &c.S3.Endpoint,
		"S3_REGION":            &c.S3.Region,
		"S3_BUCKET":            &c.S3.Bucket,
		"S3_PREFIX":            &c.S3.Prefix,
		"S3_ACCESS_KEY":        &c.S3.AccessKey,
		"S3_SECRET_KEY":        &c.S3.SecretKey,
	}
	for name, field := range strs {
		if value, ok := get(name); ok {
			*field = value
		}
	}

	lists := map[string]*[]string{
		"DEPENDENCIES":        &c.Dependencies,
		"REMOTE_REPOSITORIES": &c.RemoteRepositories,
	}
	for name, field := range lists {
		if value, ok := get(name); ok {
			*field = splitList(value)
		}
	}

	bools := map[string]*bool{
		"ADD_COMPILE_SOURCE_ROOT": &c.AddCompileSourceRoot,
		"S3_USE_SSL":              &c.S3.UseSSL,
		"CLEAN":                   &c.Clean,
		"DRY_RUN":                 &c.DryRun,
		"VERBOSE":                 &c.Verbose,
		"QUIET":                   &c.Quiet,
	}
	for name, field := range bools {
		value, ok := get(name)
		if !ok || value == "" {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return errors.WrapConfigurationError(EnvPrefix+name, value, err)
		}
		*field = parsed
	}

	return nil
}

// Validate checks settings that do not require touching the file system.
// Filter patterns are validated when they are compiled.
func (c *Config) Validate() error {
	if c.Verbose && c.Quiet {
		return errors.ConfigurationError("verbose", "cannot be combined with -quiet")
	}

	if c.TargetPackage != "" {
		if err := utils.IsJavaPackageName("targetPackage")(c.TargetPackage); err != nil {
			return errors.WrapConfigurationError("targetPackage", c.TargetPackage, err).
				WithSuggestion("Use a dotted Java package such as com.example.generated, or leave it empty for one factory per package")
		}
	}

	if err := utils.ValidateEach("remoteRepository", utils.IsRepositoryURL("remoteRepository"))(c.RemoteRepositories); err != nil {
		return errors.WrapConfigurationError("remoteRepository", strings.Join(c.RemoteRepositories, ","), err)
	}

	if c.S3.Bucket == "" && c.S3.Endpoint != "" {
		return errors.ConfigurationError("s3-bucket", "required when -s3-endpoint is set")
	}

	return nil
}

// LogLevel maps Verbose and Quiet onto a diagnostic level
func (c *Config) LogLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}

// resolvePath anchors path at WorkDir when it is relative
func (c *Config) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.WorkDir == "" {
		return path
	}
	return filepath.Join(c.WorkDir, path)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
