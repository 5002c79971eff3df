package errors

import "fmt"

// Error wrapping patterns for each stage of a run

// WrapConfigurationError wraps an invalid configuration parameter
func WrapConfigurationError(parameter, value string, cause error) *BaseError {
	message := fmt.Sprintf("invalid value for '%s': %q", parameter, value)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("parameter", parameter).
		WithContext("value", value)
}

// ConfigurationError creates a configuration error without a cause
func ConfigurationError(parameter, message string) *BaseError {
	return New(ConfigurationErrorCode, fmt.Sprintf("configuration error in '%s': %s", parameter, message)).
		WithContext("parameter", parameter)
}

// WrapResolutionError wraps a failure to resolve an artifact for a coordinate
func WrapResolutionError(coordinate string, cause error) *BaseError {
	message := fmt.Sprintf("failed to resolve artifact %s", coordinate)
	return Wrap(ResolutionErrorCode, message, cause).
		WithContext("coordinate", coordinate)
}

// WrapArchiveError wraps a failure to read an archive
func WrapArchiveError(path string, cause error) *BaseError {
	message := fmt.Sprintf("unable to read %s", path)
	return Wrap(ArchiveErrorCode, message, cause).
		WithContext("archive", path)
}

// WrapEmissionError wraps a failure to write the factory for a target package
func WrapEmissionError(targetPackage string, cause error) *BaseError {
	message := fmt.Sprintf("error creating factory for %s", targetPackage)
	return Wrap(EmissionErrorCode, message, cause).
		WithContext("target_package", targetPackage)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapParseError wraps a failure to parse a source file
func WrapParseError(item string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause)
}
