// Package factory reads Micronaut import factory sources back into their
// declared package list.
package factory

import (
	stderrors "errors"

	"github.com/alecthomas/participle/v2"

	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/templates"
)

const (
	importAnnotation  = "Import"
	factoryAnnotation = "Factory"
	packagesArgument  = "packages"
)

var parser = participle.MustBuild[File](
	participle.Lexer(javaLexer),
	participle.Elide("Whitespace", "LineComment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Parse parses an import factory source
func Parse(source string) (*File, error) {
	return ParseNamed(models.FactoryFileName, source)
}

// ParseNamed parses source, reporting errors against filename
func ParseNamed(filename, source string) (*File, error) {
	file, err := parser.ParseString(filename, source)
	if err != nil {
		parseErr := errors.WrapParseError(filename, err)

		var perr participle.Error
		if stderrors.As(err, &perr) {
			pos := perr.Position()
			parseErr = parseErr.WithLocation(errors.SourceLocation{
				File:   filename,
				Line:   pos.Line,
				Column: pos.Column,
			})
		}
		return nil, parseErr
	}
	return file, nil
}

// PackageName returns the declared package of the file
func (f *File) PackageName() string {
	return f.Package.String()
}

// Annotation returns the first annotation whose simple name is name
func (f *File) Annotation(name string) (*Annotation, bool) {
	for _, annotation := range f.Annotations {
		if annotation.Name.Simple() == name {
			return annotation, true
		}
	}
	return nil, false
}

// Argument returns the named argument of the annotation
func (a *Annotation) Argument(name string) (*Value, bool) {
	for _, arg := range a.Arguments {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// Packages returns the literals listed in @Import(packages = {...}) in
// source order
func (f *File) Packages() []string {
	annotation, ok := f.Annotation(importAnnotation)
	if !ok {
		return nil
	}
	value, ok := annotation.Argument(packagesArgument)
	if !ok {
		return nil
	}
	packages := value.Strings()
	if packages == nil {
		packages = []string{}
	}
	return packages
}

// IsImportFactory reports whether the file has the shape of an emitted
// import factory: the generated class name, both annotation imports and
// an @Import carrying a packages element.
func (f *File) IsImportFactory() bool {
	if f.ClassName != templates.FactoryClassName {
		return false
	}

	imported := make(map[string]bool, len(f.Imports))
	for _, imp := range f.Imports {
		imported[imp.String()] = true
	}
	if !imported[templates.FactoryAnnotation] || !imported[templates.ImportAnnotation] {
		return false
	}

	if _, ok := f.Annotation(factoryAnnotation); !ok {
		return false
	}
	annotation, ok := f.Annotation(importAnnotation)
	if !ok {
		return false
	}
	_, ok = annotation.Argument(packagesArgument)
	return ok
}
