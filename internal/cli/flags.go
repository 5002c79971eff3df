package cli

import (
	"flag"
	"strings"
)

// listFlag is a repeatable string flag. Values coming from the environment
// act as defaults and are replaced by the first occurrence on the command
// line.
type listFlag struct {
	values *[]string
	set    bool
}

func (l *listFlag) String() string {
	if l.values == nil {
		return ""
	}
	return strings.Join(*l.values, ",")
}

func (l *listFlag) Set(value string) error {
	if !l.set {
		*l.values = nil
		l.set = true
	}
	*l.values = append(*l.values, value)
	return nil
}

// RegisterFlags binds every setting to fs. Current field values become the
// flag defaults, so flags override the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.POM, "pom", c.POM, "Project descriptor to read (defaults to the nearest pom.xml)")
	fs.Var(&listFlag{values: &c.Dependencies}, "dependency", "Extra dependency group:artifact:version[:type[:classifier]] (repeatable)")
	fs.StringVar(&c.OutputDir, "output", c.OutputDir, "Output directory (defaults to <build dir>/"+DefaultOutputSubdir+")")
	fs.BoolVar(&c.AddCompileSourceRoot, "add-compile-source-root", c.AddCompileSourceRoot, "Register the output directory as a compile source root")

	fs.StringVar(&c.Filters.IncludeDependencies, "include-dependencies", c.Filters.IncludeDependencies, "Regex the whole group:artifact id must match")
	fs.StringVar(&c.Filters.ExcludeDependencies, "exclude-dependencies", c.Filters.ExcludeDependencies, "Regex excluding whole group:artifact ids")
	fs.StringVar(&c.Filters.IncludePackages, "include-packages", c.Filters.IncludePackages, "Regex found somewhere in every kept package name")
	fs.StringVar(&c.Filters.ExcludePackages, "exclude-packages", c.Filters.ExcludePackages, "Regex excluding every package name it is found in")
	fs.StringVar(&c.TargetPackage, "target-package", c.TargetPackage, "Emit a single factory in this package instead of one per package")

	fs.StringVar(&c.LocalRepository, "local-repository", c.LocalRepository, "Local Maven repository (defaults to ~/.m2/repository)")
	fs.Var(&listFlag{values: &c.RemoteRepositories}, "remote-repository", "Remote Maven repository URL (repeatable)")

	fs.StringVar(&c.S3.Endpoint, "s3-endpoint", c.S3.Endpoint, "S3 endpoint of a bucket repository")
	fs.StringVar(&c.S3.Region, "s3-region", c.S3.Region, "S3 region")
	fs.StringVar(&c.S3.Bucket, "s3-bucket", c.S3.Bucket, "S3 bucket holding a Maven repository layout")
	fs.StringVar(&c.S3.Prefix, "s3-prefix", c.S3.Prefix, "Key prefix of the repository layout in the bucket")
	fs.StringVar(&c.S3.AccessKey, "s3-access-key", c.S3.AccessKey, "S3 access key")
	fs.StringVar(&c.S3.SecretKey, "s3-secret-key", c.S3.SecretKey, "S3 secret key")
	fs.BoolVar(&c.S3.UseSSL, "s3-use-ssl", c.S3.UseSSL, "Use TLS for the S3 endpoint")

	fs.BoolVar(&c.Clean, "clean", c.Clean, "Remove previously generated ImportFactory.java files and exit")
	fs.BoolVar(&c.DryRun, "dry-run", c.DryRun, "Print the factories that would be written without writing them")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "Enable verbose output and detailed error reporting")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "Only show errors")
}
