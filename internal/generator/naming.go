package generator

import (
	"strings"

	"github.com/ettle/strcase"
)

// TypeName normalizes a schema or property name to type casing, e.g. "invoice_line" -> "InvoiceLine"
func TypeName(s string) string {
	return strcase.ToPascal(s)
}

// MemberName normalizes a property name to member casing, e.g. "customer_id" -> "customerId"
func MemberName(s string) string {
	return strcase.ToCamel(s)
}

// ConstantName normalizes an enum literal to constant casing, e.g. "in progress" -> "IN_PROGRESS"
func ConstantName(s string) string {
	return strcase.ToSNAKE(s)
}

// RefName returns the trailing segment of a pointer-style reference
func RefName(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}
