package generator

import (
	"strconv"

	"github.com/tordrt/jdlgen/internal/schema"
)

// JDL field type tokens
const (
	TypeBigDecimal    = "BigDecimal"
	TypeInteger       = "Integer"
	TypeLong          = "Long"
	TypeString        = "String"
	TypeLocalDate     = "LocalDate"
	TypeZonedDateTime = "ZonedDateTime"
)

const (
	formatInt64    = "int64"
	formatDate     = "date"
	formatDateTime = "date-time"
)

// MapType maps a primitive declaration to a field type with its validation tokens.
// required reports whether the owning schema lists the property as required and
// unique whether the property carries the x-unique marker.
func MapType(typ string, c schema.Constraints, required, unique bool) schema.Field {
	f := schema.Field{Required: required, Unique: unique}

	switch typ {
	case schema.TypeNumber:
		f.Type = TypeBigDecimal
		f.Validations = boundTokens(c)
	case schema.TypeInteger:
		f.Type = TypeInteger
		if c.Format == formatInt64 {
			f.Type = TypeLong
		}
		f.Validations = boundTokens(c)
	case schema.TypeString:
		switch c.Format {
		case formatDate:
			f.Type = TypeLocalDate
		case formatDateTime:
			f.Type = TypeZonedDateTime
		default:
			f.Type = TypeString
			f.Validations = lengthTokens(c)
		}
	default:
		f.Type = TypeName(typ)
	}
	return f
}

func boundTokens(c schema.Constraints) []string {
	var tokens []string
	if c.Minimum != nil {
		tokens = append(tokens, "min("+formatNumber(*c.Minimum)+")")
	}
	if c.Maximum != nil {
		tokens = append(tokens, "max("+formatNumber(*c.Maximum)+")")
	}
	return tokens
}

func lengthTokens(c schema.Constraints) []string {
	var tokens []string
	if c.MinLength != nil {
		tokens = append(tokens, "minlength("+strconv.FormatUint(*c.MinLength, 10)+")")
	}
	if c.MaxLength != nil {
		tokens = append(tokens, "maxlength("+strconv.FormatUint(*c.MaxLength, 10)+")")
	}
	if c.Pattern != "" {
		tokens = append(tokens, "pattern(/"+c.Pattern+"/)")
	}
	return tokens
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
