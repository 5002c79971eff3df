package factory

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is the parsed form of a single-class Java source file such as an
// emitted import factory
type File struct {
	Pos lexer.Position

	Package     *QualifiedName   `parser:"'package' @@ ';'"`
	Imports     []*QualifiedName `parser:"( 'import' @@ ';' )*"`
	Doc         string           `parser:"@BlockComment?"`
	Annotations []*Annotation    `parser:"@@*"`
	Public      bool             `parser:"@'public'?"`
	ClassName   string           `parser:"'class' @Ident '{' '}'"`
}

// QualifiedName is a dotted Java name such as io.micronaut.context.annotation.Factory
type QualifiedName struct {
	Parts []string `parser:"@Ident ( '.' @Ident )*"`
}

// String joins the name parts with dots
func (q *QualifiedName) String() string {
	if q == nil {
		return ""
	}
	return strings.Join(q.Parts, ".")
}

// Simple returns the last part of the name
func (q *QualifiedName) Simple() string {
	if q == nil || len(q.Parts) == 0 {
		return ""
	}
	return q.Parts[len(q.Parts)-1]
}

// Annotation is a type annotation with optional named arguments
type Annotation struct {
	Pos lexer.Position

	Name      *QualifiedName `parser:"'@' @@"`
	Arguments []*Argument    `parser:"( '(' ( @@ ','? )* ')' )?"`
}

// Argument is a name = value annotation element
type Argument struct {
	Name  string `parser:"@Ident '='"`
	Value *Value `parser:"@@"`
}

// Value is an annotation element value
type Value struct {
	Array  []*Value       `parser:"  '{' ( @@ ','? )* '}'"`
	String *string        `parser:"| @String"`
	Name   *QualifiedName `parser:"| @@"`
}

// Strings flattens string literals held by v, descending into arrays
func (v *Value) Strings() []string {
	switch {
	case v == nil:
		return nil
	case v.String != nil:
		return []string{*v.String}
	case v.Array != nil:
		var out []string
		for _, item := range v.Array {
			out = append(out, item.Strings()...)
		}
		return out
	default:
		return nil
	}
}

var javaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "Punct", Pattern: `[.;@(){}=,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})
