package vtable

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// Render writes the dispatch table of every relation as aligned text,
// sorted by type then interface:
//
//	dispatch.Derived implements dispatch.Entity
//	    Display(io.Writer)  -> Derived (overrides Base)
//	    Kill(io.Writer)     -> Base (promoted)
func Render(w io.Writer, result *Result) error {
	rels := sortedRelations(result.Relations)
	if len(rels) == 0 {
		_, err := fmt.Fprintln(w, "No interface implementations found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, rel := range rels {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		recv := rel.Type.PkgName + "." + rel.Type.Name
		if rel.ViaPointer {
			recv = "*" + recv
		}
		fmt.Fprintf(tw, "%s implements %s.%s\n", recv, rel.Interface.PkgName, rel.Interface.Name)
		for _, s := range rel.Slots {
			target := s.DeclaredBy
			switch {
			case s.Promoted:
				target += " (promoted)"
			case s.Shadows != "":
				target += " (overrides " + s.Shadows + ")"
			}
			fmt.Fprintf(tw, "    %s\t-> %s\n", s.Signature, target)
		}
	}
	return tw.Flush()
}

// Mermaid produces a Mermaid classDiagram with implementation edges and
// embedding edges between concrete types.
func Mermaid(result *Result) string {
	var b strings.Builder

	ifaces := make([]InterfaceDef, len(result.Interfaces))
	copy(ifaces, result.Interfaces)
	sort.Slice(ifaces, func(i, j int) bool {
		return NodeID(ifaces[i].PkgName, ifaces[i].Name) < NodeID(ifaces[j].PkgName, ifaces[j].Name)
	})

	typs := make([]TypeDef, len(result.Types))
	copy(typs, result.Types)
	sort.Slice(typs, func(i, j int) bool {
		return NodeID(typs[i].PkgName, typs[i].Name) < NodeID(typs[j].PkgName, typs[j].Name)
	})

	known := make(map[string]bool, len(typs))
	for _, t := range typs {
		known[NodeID(t.PkgName, t.Name)] = true
	}

	b.WriteString("classDiagram\n")
	b.WriteString("    direction LR\n")

	for _, iface := range ifaces {
		fmt.Fprintf(&b, "    class %s {\n", NodeID(iface.PkgName, iface.Name))
		b.WriteString("        <<interface>>\n")
		for _, m := range iface.Methods {
			fmt.Fprintf(&b, "        +%s\n", SanitizeSignature(m.Signature))
		}
		b.WriteString("    }\n")
	}

	for _, typ := range typs {
		fmt.Fprintf(&b, "    class %s {\n", NodeID(typ.PkgName, typ.Name))
		for _, m := range typ.Methods {
			fmt.Fprintf(&b, "        +%s\n", SanitizeSignature(m.Signature))
		}
		b.WriteString("    }\n")
	}

	for _, typ := range typs {
		id := NodeID(typ.PkgName, typ.Name)
		for _, embed := range typ.Embeds {
			embedID := sanitizeID(strings.TrimPrefix(embed, "*"))
			if known[embedID] {
				fmt.Fprintf(&b, "    %s *-- %s : embeds\n", id, embedID)
			}
		}
	}

	for _, rel := range sortedRelations(result.Relations) {
		fmt.Fprintf(&b, "    %s ..|> %s\n",
			NodeID(rel.Type.PkgName, rel.Type.Name),
			NodeID(rel.Interface.PkgName, rel.Interface.Name))
	}

	return b.String()
}

// SanitizeSignature removes characters in method signatures that break
// Mermaid class labels.
func SanitizeSignature(sig string) string {
	sig = strings.ReplaceAll(sig, "<-chan", "chan")
	// bare "interface" collides with the <<interface>> annotation
	sig = strings.ReplaceAll(sig, "interface{}", "any")
	sig = strings.ReplaceAll(sig, "{}", "")
	return sig
}

// NodeID builds a sanitized node ID from pkgName and type name.
func NodeID(pkgName, name string) string {
	return sanitizeID(pkgName + "_" + name)
}

func sanitizeID(s string) string {
	r := strings.NewReplacer("/", "_", ".", "_", "-", "_")
	return r.Replace(s)
}

func sortedRelations(in []Relation) []Relation {
	rels := make([]Relation, len(in))
	copy(rels, in)
	sort.Slice(rels, func(i, j int) bool {
		ti := NodeID(rels[i].Type.PkgName, rels[i].Type.Name)
		tj := NodeID(rels[j].Type.PkgName, rels[j].Type.Name)
		if ti != tj {
			return ti < tj
		}
		return NodeID(rels[i].Interface.PkgName, rels[i].Interface.Name) <
			NodeID(rels[j].Interface.PkgName, rels[j].Interface.Name)
	})
	return rels
}
