package formatter

import (
	"fmt"
	"io"

	"github.com/tordrt/jdlgen/internal/schema"
)

const indent = "    "

// JDLFormatter renders a model in JDL
type JDLFormatter struct {
	writer io.Writer
	err    error
}

// NewJDLFormatter creates a new JDL formatter
func NewJDLFormatter(w io.Writer) *JDLFormatter {
	return &JDLFormatter{writer: w}
}

// WriteHeader writes the application config block followed by the global options
func (f *JDLFormatter) WriteHeader(h Header) error {
	f.print(h.AppConfig)
	f.print("\n")
	f.print(h.GlobalOptions)
	return f.err
}

// Format writes every entity, each followed by its inline enums and relationship
// blocks, then the global enums. Blocks are separated by a blank line.
func (f *JDLFormatter) Format(m *schema.Model) error {
	for _, e := range m.Entities {
		f.formatEntity(e)
		for _, en := range e.Enums {
			f.formatEnum(en)
		}
		for _, kind := range schema.RelationshipKinds {
			f.formatRelationships(kind, e.RelationshipsOf(kind))
		}
	}
	for _, en := range m.Enums {
		f.formatEnum(en)
	}
	return f.err
}

func (f *JDLFormatter) formatEntity(e *schema.Entity) {
	f.print("\n")
	f.comment("", e.Description)
	f.printf("@EntityPackage(%s)\n", e.Package)
	f.printf("entity %s {\n", e.Name)
	for i, field := range e.Fields {
		if i > 0 {
			f.print("\n")
		}
		f.formatField(field)
	}
	f.print("}\n")
}

func (f *JDLFormatter) formatField(field schema.Field) {
	f.comment(indent, field.Description)
	for _, a := range field.Annotations {
		f.printf("%s%s\n", indent, a)
	}
	f.printf("%s%s %s\n", indent, field.Name, field.Declaration())
}

func (f *JDLFormatter) formatEnum(e *schema.Enum) {
	f.print("\n")
	f.comment("", e.Description)
	f.printf("enum %s {\n", e.Name)
	for _, v := range e.Values {
		f.printf("%s%s\n", indent, v)
	}
	f.print("}\n")
}

func (f *JDLFormatter) formatRelationships(kind schema.RelationshipKind, rels []schema.Relationship) {
	if len(rels) == 0 {
		return
	}
	f.print("\n")
	f.printf("relationship %s {\n", kind)
	for _, r := range rels {
		f.printf("%s%s\n", indent, r)
	}
	f.print("}\n")
}

func (f *JDLFormatter) comment(prefix, text string) {
	if text != "" {
		f.printf("%s/** %s */\n", prefix, text)
	}
}

// print and printf keep the first write error and drop later writes
func (f *JDLFormatter) print(s string) {
	if f.err != nil {
		return
	}
	_, f.err = io.WriteString(f.writer, s)
}

func (f *JDLFormatter) printf(format string, args ...any) {
	if f.err != nil {
		return
	}
	_, f.err = fmt.Fprintf(f.writer, format, args...)
}
