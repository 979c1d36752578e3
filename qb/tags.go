package qb

import "github.com/samber/lo"

// Type tags understood by prepared-statement APIs that take a type string
// alongside the bound values.
const (
	TagInt    byte = 'i'
	TagDouble byte = 'd'
	TagString byte = 's'
	TagBlob   byte = 'b'
)

// Tag picks the type tag for a single bound value. Anything without a more
// specific tag is sent as a string.
func Tag(v any) byte {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, bool:
		return TagInt
	case float32, float64:
		return TagDouble
	case []byte:
		return TagBlob
	default:
		return TagString
	}
}

// Tags returns one tag per value, in order.
func Tags(args []any) string {
	return string(lo.Map(args, func(v any, _ int) byte { return Tag(v) }))
}
