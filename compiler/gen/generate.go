package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
)

// GoType returns the Go type binding values of the application type.
// Optional slices are nil slices and optional big integers nil pointers.
func GoType(t AppType) *jen.Statement {
	switch t := t.(type) {
	case Primitive:
		switch t {
		case AppID, AppString, AppAddress:
			return jen.String()
		case AppInt:
			return jen.Int()
		case AppFloat:
			return jen.Float64()
		case AppBigInt:
			return jen.Op("*").Qual("math/big", "Int")
		case AppBool:
			return jen.Bool()
		}
	case *EnumVariant:
		return jen.Id(t.Enum)
	case *Array:
		return jen.Index().Add(GoType(t.Elem))
	case *Optional:
		switch elem := t.Elem.(type) {
		case *Array:
			return GoType(elem)
		case Primitive:
			if elem == AppBigInt {
				return GoType(elem)
			}
		}
		return jen.Op("*").Add(GoType(t.Elem))
	case *Tuple:
		fields := make([]jen.Code, len(t.Elems))
		for i, e := range t.Elems {
			fields[i] = jen.Id("V" + strconv.Itoa(i)).Add(GoType(e))
		}
		return jen.Struct(fields...)
	}
	return jen.Interface()
}

// GoFile returns the Go binding file of the graph: one string type per enum
// with its variants and default, and one struct per entity. It fails if two
// declarations map to the same Go identifier.
func (g *Graph) GoFile() (*jen.File, error) {
	if err := g.checkGoNames(); err != nil {
		return nil, err
	}
	f := jen.NewFile(g.Package)
	if g.Header != "" {
		f.HeaderComment(g.Header)
	}
	for _, e := range g.Enums {
		g.genEnum(f, e)
	}
	for _, t := range g.Nodes {
		g.genType(f, t)
	}
	return f, nil
}

// checkGoNames reports package-level identifiers declared twice, and struct
// fields declared twice in one entity.
func (g *Graph) checkGoNames() error {
	decls := make(map[string]string)
	declare := func(id, from string) error {
		if prev, ok := decls[id]; ok {
			return NewConfigError("bindings", id, fmt.Sprintf("%s and %s both declare Go identifier %s", prev, from, id))
		}
		decls[id] = from
		return nil
	}
	for _, e := range g.Enums {
		if err := declare(e.Name, "enum "+e.Name); err != nil {
			return err
		}
		for _, v := range e.Values {
			if err := declare(enumValueName(e.Name, v), "value "+e.Name+"."+v); err != nil {
				return err
			}
		}
		if e.Default != "" {
			if err := declare(e.Name+"Default", "default of enum "+e.Name); err != nil {
				return err
			}
		}
	}
	for _, t := range g.Nodes {
		if err := declare(t.Name, "entity "+t.Name); err != nil {
			return err
		}
		fields := make(map[string]string, len(t.Fields))
		for _, fd := range t.Fields {
			id := fd.StructField()
			if prev, ok := fields[id]; ok {
				return &FieldError{Type: t.Name, Field: fd.Name, Cause: fmt.Errorf("struct field %s is already declared by field %s", id, prev)}
			}
			fields[id] = fd.Name
		}
	}
	return nil
}

func (g *Graph) genEnum(f *jen.File, e *Enum) {
	f.Commentf("%s is the %s schema enum.", e.Name, e.Name)
	f.Type().Id(e.Name).String()
	f.Const().DefsFunc(func(grp *jen.Group) {
		for _, v := range e.Values {
			grp.Id(enumValueName(e.Name, v)).Id(e.Name).Op("=").Lit(v)
		}
	})
	if e.Default != "" {
		f.Commentf("%sDefault is the default %s variant.", e.Name, e.Name)
		f.Const().Id(e.Name + "Default").Op("=").Id(enumValueName(e.Name, e.Default))
	}
	f.Commentf("Values returns all %s variants.", e.Name)
	f.Func().Params(jen.Id(e.Name)).Id("Values").Params().Index().Id(e.Name).BlockFunc(func(grp *jen.Group) {
		vals := make([]jen.Code, len(e.Values))
		for i, v := range e.Values {
			vals[i] = jen.Id(enumValueName(e.Name, v))
		}
		grp.Return(jen.Index().Id(e.Name).Values(vals...))
	})
}

func (g *Graph) genType(f *jen.File, t *Type) {
	f.Commentf("%s is the %s entity.", t.Name, t.Name)
	f.Type().Id(t.Name).StructFunc(func(grp *jen.Group) {
		for _, fd := range t.Fields {
			tag := fd.StorageKey
			if fd.Derived {
				tag = "-"
			}
			grp.Id(fd.StructField()).Add(GoType(fd.App())).Tag(map[string]string{"json": tag})
		}
	})
}

func enumValueName(enum, value string) string {
	return enum + inflect.Camelize(strings.ToLower(value))
}
