package gen

import (
	"strconv"
	"strings"
)

// Placeholders are the sample literals used as defaults of textual types.
type Placeholders struct {
	String string `json:"string" yaml:"string"`
	ID     string `json:"id" yaml:"id"`
}

// DefaultPlaceholders are used unless configured otherwise.
var DefaultPlaceholders = Placeholders{String: "foo", ID: "my_id"}

// DefaultValue returns the default literal of t in the binding language.
func DefaultValue(t AppType) string {
	return DefaultPlaceholders.Default(t)
}

// DefaultValueTS returns the default literal of t in TypeScript.
func DefaultValueTS(t AppType) string {
	return DefaultPlaceholders.DefaultTS(t)
}

// Default returns the default literal of t in the binding language.
func (p Placeholders) Default(t AppType) string {
	switch t := t.(type) {
	case Primitive:
		switch t {
		case AppInt:
			return "0"
		case AppFloat:
			return "0.0"
		case AppBigInt:
			return "Ethers.BigInt.zero"
		case AppAddress:
			return "Ethers.Addresses.defaultAddress"
		case AppString:
			return strconv.Quote(p.String)
		case AppID:
			return strconv.Quote(p.ID)
		case AppBool:
			return "false"
		}
	case *Array:
		return "[]"
	case *Optional:
		return "None"
	case *EnumVariant:
		return "Enums." + lowerFirst(t.Enum) + "Default"
	case *Tuple:
		return "(" + p.join(t.Elems, p.Default) + ")"
	}
	return ""
}

// DefaultTS returns the default literal of t in TypeScript.
func (p Placeholders) DefaultTS(t AppType) string {
	switch t := t.(type) {
	case Primitive:
		switch t {
		case AppInt, AppFloat:
			return "0"
		case AppBigInt:
			return "0n"
		case AppAddress:
			return "Addresses.defaultAddress"
		case AppString:
			return strconv.Quote(p.String)
		case AppID:
			return strconv.Quote(p.ID)
		case AppBool:
			return "false"
		}
	case *Array:
		return "[]"
	case *Optional:
		return "null"
	case *EnumVariant:
		return lowerFirst(t.Enum) + "Default"
	case *Tuple:
		return "[" + p.join(t.Elems, p.DefaultTS) + "]"
	}
	return ""
}

func (Placeholders) join(elems []AppType, fn func(AppType) string) string {
	vs := make([]string, len(elems))
	for i, e := range elems {
		vs[i] = fn(e)
	}
	return strings.Join(vs, ", ")
}
