// Package vtable loads Go packages and reports, for every concrete type
// that satisfies an interface, which method each interface call dispatches
// to and whether that method is declared on the type or promoted from an
// embedded field.
package vtable

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"
)

// Load loads the packages matching patterns (default "./...") from dir and
// builds the dispatch table of every interface-implementation relationship.
func Load(ctx context.Context, dir string, opts Options, logger *slog.Logger, patterns ...string) (*Result, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	if opts.IncludeStdlib {
		patterns = append(patterns, "fmt", "io", "io/fs", "encoding", "sort", "context")
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax |
			packages.NeedTypesInfo | packages.NeedImports | packages.NeedModule,
		Dir:     dir,
		Context: ctx,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	logger.Info("packages loaded", "packages_count", len(pkgs))

	var std stdlibIndex
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
		if pkg.Module != nil {
			std.addModule(pkg.Module.Path)
		}
	}

	var ifaces []InterfaceDef
	var namedTypes []TypeDef
	seenIfaces := make(map[string]bool)
	seenTypes := make(map[string]bool)

	collectInterfaces := func(scope *types.Scope, pkgPath, pkgName string, fset *token.FileSet) {
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			iface, ok := named.Underlying().(*types.Interface)
			if !ok {
				continue
			}
			key := pkgPath + "." + tn.Name()
			if seenIfaces[key] {
				continue
			}
			seenIfaces[key] = true
			ifaces = append(ifaces, InterfaceDef{
				Name:       tn.Name(),
				PkgPath:    pkgPath,
				PkgName:    pkgName,
				Stdlib:     std.contains(pkgPath),
				Methods:    extractIfaceMethods(iface),
				TypeObj:    iface,
				SourceFile: resolveSourceFile(fset, tn.Pos(), dir),
			})
			logger.Debug("found interface", "name", tn.Name(), "package", pkgPath, "methods", iface.NumMethods())
		}
	}

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}

		scope := pkg.Types.Scope()
		collectInterfaces(scope, pkg.PkgPath, pkg.Name, pkg.Fset)

		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			if _, ok := named.Underlying().(*types.Interface); ok {
				continue
			}
			key := pkg.PkgPath + "." + tn.Name()
			if seenTypes[key] {
				continue
			}
			seenTypes[key] = true
			methods := extractTypeMethods(named)
			namedTypes = append(namedTypes, TypeDef{
				Name:       tn.Name(),
				PkgPath:    pkg.PkgPath,
				PkgName:    pkg.Name,
				Stdlib:     std.contains(pkg.PkgPath),
				IsStruct:   isStruct(named),
				Embeds:     embeddedFields(named),
				Methods:    methods,
				TypeObj:    named,
				SourceFile: resolveSourceFile(pkg.Fset, tn.Pos(), dir),
			})
			logger.Debug("found type", "name", tn.Name(), "package", pkg.PkgPath, "methods", len(methods))
		}
	}

	// Interfaces from imports can be satisfied by local types. Loaded
	// packages come first so their definitions keep a source file.
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		for _, imp := range pkg.Types.Imports() {
			collectInterfaces(imp.Scope(), imp.Path(), imp.Name(), nil)
		}
	}

	if errorObj, ok := types.Universe.Lookup("error").(*types.TypeName); ok {
		if iface, ok := errorObj.Type().Underlying().(*types.Interface); ok && !seenIfaces["builtin.error"] {
			seenIfaces["builtin.error"] = true
			ifaces = append(ifaces, InterfaceDef{
				Name:    "error",
				PkgPath: "builtin",
				PkgName: "builtin",
				Stdlib:  true,
				Methods: extractIfaceMethods(iface),
				TypeObj: iface,
			})
		}
	}

	logger.Info("types collected", "interfaces", len(ifaces), "types", len(namedTypes))

	var methodSetCache typeutil.MethodSetCache
	var relations []Relation

	for i := range namedTypes {
		t := &namedTypes[i]
		valType := t.TypeObj
		ptrType := types.NewPointer(valType)
		valMethodSet := methodSetCache.MethodSet(valType)
		ptrMethodSet := methodSetCache.MethodSet(ptrType)

		for j := range ifaces {
			iface := &ifaces[j]
			if iface.TypeObj.NumMethods() == 0 {
				continue
			}

			switch {
			case implements(valType, valMethodSet, iface.TypeObj):
				relations = append(relations, Relation{
					Type:      t,
					Interface: iface,
					Slots:     buildSlots(t.TypeObj, valMethodSet, iface.TypeObj),
				})
				logger.Debug("match found", "type", t.Name, "interface", iface.Name, "via_pointer", false)
			case implements(ptrType, ptrMethodSet, iface.TypeObj):
				relations = append(relations, Relation{
					Type:       t,
					Interface:  iface,
					ViaPointer: true,
					Slots:      buildSlots(t.TypeObj, ptrMethodSet, iface.TypeObj),
				})
				logger.Debug("match found", "type", t.Name, "interface", iface.Name, "via_pointer", true)
			}
		}
	}

	logger.Info("inspection complete", "relations", len(relations))

	return &Result{
		Interfaces: ifaces,
		Types:      namedTypes,
		Relations:  relations,
	}, nil
}

// buildSlots resolves every method of iface against mset, the method set
// of named or *named. The selection path is longer than one step when the
// method is promoted.
func buildSlots(named *types.Named, mset *types.MethodSet, iface *types.Interface) []Slot {
	slots := make([]Slot, 0, iface.NumMethods())
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		sel := mset.Lookup(m.Pkg(), m.Name())
		if sel == nil {
			continue
		}
		fn, ok := sel.Obj().(*types.Func)
		if !ok {
			continue
		}
		name, pkgPath := declaringType(fn)
		slot := Slot{
			Method:      fn.Name(),
			Signature:   formatSignature(fn),
			DeclaredBy:  name,
			DeclaredPkg: pkgPath,
			Promoted:    len(sel.Index()) > 1,
		}
		if !slot.Promoted {
			slot.Shadows = shadowedBy(named, fn)
		}
		slots = append(slots, slot)
	}
	return slots
}

// shadowedBy returns the declaring type of the first method named like fn
// that an embedded field of named would promote, or "" if none does.
func shadowedBy(named *types.Named, fn *types.Func) string {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return ""
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		obj, _, _ := types.LookupFieldOrMethod(f.Type(), true, fn.Pkg(), fn.Name())
		if hidden, ok := obj.(*types.Func); ok {
			name, _ := declaringType(hidden)
			return name
		}
	}
	return ""
}

func declaringType(fn *types.Func) (name, pkgPath string) {
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return "", ""
	}
	t := sig.Recv().Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		obj := named.Obj()
		if obj.Pkg() != nil {
			pkgPath = obj.Pkg().Path()
		}
		return obj.Name(), pkgPath
	}
	return shortType(t), ""
}

func extractIfaceMethods(iface *types.Interface) []MethodSig {
	methods := make([]MethodSig, iface.NumMethods())
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		methods[i] = MethodSig{
			Name:      m.Name(),
			Signature: formatSignature(m),
		}
	}
	return methods
}

// extractTypeMethods lists methods declared directly on named, without
// promoted ones.
func extractTypeMethods(named *types.Named) []MethodSig {
	var methods []MethodSig
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		methods = append(methods, MethodSig{
			Name:      m.Name(),
			Signature: formatSignature(m),
		})
	}
	return methods
}

func embeddedFields(named *types.Named) []string {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	var out []string
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() {
			out = append(out, shortType(f.Type()))
		}
	}
	return out
}

func formatSignature(fn *types.Func) string {
	sig := fn.Type().(*types.Signature)
	var b strings.Builder
	b.WriteString(fn.Name())
	b.WriteString("(")
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(shortType(params.At(i).Type()))
	}
	b.WriteString(")")
	results := sig.Results()
	switch results.Len() {
	case 0:
	case 1:
		b.WriteString(" ")
		b.WriteString(shortType(results.At(0).Type()))
	default:
		b.WriteString(" (")
		for i := 0; i < results.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(shortType(results.At(i).Type()))
		}
		b.WriteString(")")
	}
	return b.String()
}

func shortType(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	})
}

func isStruct(named *types.Named) bool {
	_, ok := named.Underlying().(*types.Struct)
	return ok
}

// implements reports whether t satisfies iface. Packages type-checked
// separately hold distinct copies of shared named types, so when
// types.Implements says no, every interface method is looked up in mset
// and its signature compared by fully qualified spelling.
func implements(t types.Type, mset *types.MethodSet, iface *types.Interface) bool {
	if types.Implements(t, iface) {
		return true
	}
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		sel := mset.Lookup(m.Pkg(), m.Name())
		if sel == nil {
			return false
		}
		if qualifiedSignature(sel.Obj().Type()) != qualifiedSignature(m.Type()) {
			return false
		}
	}
	return true
}

// qualifiedSignature spells a method type without its receiver or
// parameter names, with package paths in full.
func qualifiedSignature(t types.Type) string {
	sig, ok := t.(*types.Signature)
	if !ok {
		return types.TypeString(t, nil)
	}
	var b strings.Builder
	writeTuple(&b, sig.Params(), sig.Variadic())
	b.WriteString(" ")
	writeTuple(&b, sig.Results(), false)
	return b.String()
}

func writeTuple(b *strings.Builder, tup *types.Tuple, variadic bool) {
	b.WriteString("(")
	for i := 0; i < tup.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		t := tup.At(i).Type()
		if variadic && i == tup.Len()-1 {
			if s, ok := t.(*types.Slice); ok {
				b.WriteString("...")
				t = s.Elem()
			}
		}
		b.WriteString(types.TypeString(t, nil))
	}
	b.WriteString(")")
}

// resolveSourceFile resolves a token position to a file path relative to moduleRoot.
func resolveSourceFile(fset *token.FileSet, pos token.Pos, moduleRoot string) string {
	if fset == nil || !pos.IsValid() {
		return ""
	}
	position := fset.Position(pos)
	if !position.IsValid() || position.Filename == "" {
		return ""
	}
	rel, err := filepath.Rel(moduleRoot, position.Filename)
	if err != nil {
		return position.Filename
	}
	return rel
}
