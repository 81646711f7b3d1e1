package vtable

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Show selects relations by how their dispatch tables are assembled.
type Show string

// Show modes accepted by -show.
const (
	ShowAll       Show = "all"
	ShowInherited Show = "inherited" // at least one slot promoted from an embedded field
	ShowOverrides Show = "overrides" // at least one slot shadows an embedded method
)

// ParseShow maps a -show flag value to a Show. The empty string means ShowAll.
func ParseShow(s string) (Show, error) {
	switch Show(strings.ToLower(s)) {
	case "", ShowAll:
		return ShowAll, nil
	case ShowInherited:
		return ShowInherited, nil
	case ShowOverrides:
		return ShowOverrides, nil
	default:
		return ShowAll, fmt.Errorf("unknown show mode: %s (valid: all, inherited, overrides)", s)
	}
}

type relationCheck func(Relation) bool

// Filter keeps the relations that pass every check selected by opts and
// drops interfaces and types left without a relation.
func Filter(result *Result, opts Options) *Result {
	checks := relationChecks(opts)
	filtered := &Result{}

	ifaceSet := make(map[string]bool)
	typeSet := make(map[string]bool)

	for _, rel := range result.Relations {
		if !passesAll(rel, checks) {
			continue
		}
		filtered.Relations = append(filtered.Relations, rel)
		ifaceSet[ifaceKey(rel.Interface)] = true
		typeSet[typeKey(rel.Type)] = true
	}

	for i := range result.Interfaces {
		if ifaceSet[ifaceKey(&result.Interfaces[i])] {
			filtered.Interfaces = append(filtered.Interfaces, result.Interfaces[i])
		}
	}
	for i := range result.Types {
		if typeSet[typeKey(&result.Types[i])] {
			filtered.Types = append(filtered.Types, result.Types[i])
		}
	}

	return filtered
}

func relationChecks(opts Options) []relationCheck {
	var checks []relationCheck

	if !opts.IncludeStdlib {
		checks = append(checks, func(r Relation) bool {
			return !r.Interface.Stdlib && !r.Type.Stdlib
		})
	}
	if !opts.IncludeUnexported {
		checks = append(checks, func(r Relation) bool {
			return !isUnexported(r.Interface.Name) && !isUnexported(r.Type.Name)
		})
	}
	if opts.Filter != "" {
		checks = append(checks, func(r Relation) bool {
			return strings.HasPrefix(r.Interface.PkgPath, opts.Filter) ||
				strings.HasPrefix(r.Type.PkgPath, opts.Filter)
		})
	}

	switch opts.Show {
	case ShowInherited:
		checks = append(checks, func(r Relation) bool { return len(r.Inherited()) > 0 })
	case ShowOverrides:
		checks = append(checks, func(r Relation) bool { return len(r.Overrides()) > 0 })
	}

	return checks
}

func passesAll(rel Relation, checks []relationCheck) bool {
	for _, check := range checks {
		if !check(rel) {
			return false
		}
	}
	return true
}

// stdlibIndex classifies package paths. A path inside a loaded module is
// never standard library; outside one, the go command reserves paths whose
// first element has no dot for the standard library.
type stdlibIndex struct {
	modules []string
}

func (s *stdlibIndex) addModule(path string) {
	if !slices.Contains(s.modules, path) {
		s.modules = append(s.modules, path)
	}
}

func (s stdlibIndex) contains(pkgPath string) bool {
	for _, m := range s.modules {
		if pkgPath == m || strings.HasPrefix(pkgPath, m+"/") {
			return false
		}
	}
	first, _, _ := strings.Cut(pkgPath, "/")
	return !strings.Contains(first, ".")
}

func isUnexported(name string) bool {
	if name == "" {
		return true
	}
	// error is lowercase but predeclared
	if name == "error" {
		return false
	}
	return unicode.IsLower(rune(name[0]))
}

func ifaceKey(iface *InterfaceDef) string {
	return iface.PkgPath + "." + iface.Name
}

func typeKey(typ *TypeDef) string {
	return typ.PkgPath + "." + typ.Name
}
