package vtable

import "go/types"

// InterfaceDef represents a discovered Go interface.
type InterfaceDef struct {
	Name       string
	PkgPath    string
	PkgName    string
	Stdlib     bool
	Methods    []MethodSig
	TypeObj    *types.Interface
	SourceFile string
}

// TypeDef represents a discovered named, non-interface Go type.
type TypeDef struct {
	Name       string
	PkgPath    string
	PkgName    string
	Stdlib     bool
	IsStruct   bool
	Embeds     []string // embedded field type names, in declaration order
	Methods    []MethodSig
	TypeObj    *types.Named
	SourceFile string
}

// MethodSig captures a method name and its signature string.
type MethodSig struct {
	Name      string
	Signature string
}

// Slot is one entry of a dispatch table: the method a call through the
// interface resolves to for a given concrete type.
type Slot struct {
	Method      string
	Signature   string
	DeclaredBy  string // type that declares the resolved method
	DeclaredPkg string
	Promoted    bool   // reached through an embedded field
	Shadows     string // embedded type whose method of the same name this one hides
}

// Relation captures that a concrete type implements an interface, together
// with its dispatch table.
type Relation struct {
	Type       *TypeDef
	Interface  *InterfaceDef
	ViaPointer bool // true if only *T (not T) satisfies the interface
	Slots      []Slot
}

// Overrides returns the slots whose method hides one an embedded field
// would otherwise promote.
func (r Relation) Overrides() []Slot {
	var out []Slot
	for _, s := range r.Slots {
		if s.Shadows != "" {
			out = append(out, s)
		}
	}
	return out
}

// Inherited returns the slots resolved through embedding.
func (r Relation) Inherited() []Slot {
	var out []Slot
	for _, s := range r.Slots {
		if s.Promoted {
			out = append(out, s)
		}
	}
	return out
}

// Result holds the complete inspection output.
type Result struct {
	Interfaces []InterfaceDef
	Types      []TypeDef
	Relations  []Relation
}

// Options controls loading and filtering.
type Options struct {
	Filter            string // package path prefix filter
	IncludeStdlib     bool
	IncludeUnexported bool
	Show              Show
}
