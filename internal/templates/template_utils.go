package templates

import (
	"strings"
)

// Fully-qualified names of the Micronaut annotations referenced by factories
const (
	FactoryAnnotation = "io.micronaut.context.annotation.Factory"
	ImportAnnotation  = "io.micronaut.context.annotation.Import"
)

// FactoryClassName is the simple name of every generated factory class
const FactoryClassName = "ImportFactory"

// javaStringReplacer escapes characters that cannot appear raw in a Java string literal
var javaStringReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// JavaString quotes s as a Java string literal
func JavaString(s string) string {
	return `"` + javaStringReplacer.Replace(s) + `"`
}

// PackagePath converts a dotted package name to a slash-separated path
func PackagePath(packageName string) string {
	return strings.ReplaceAll(packageName, ".", "/")
}
