package resolve

import "github.com/you-not-fish/ember/internal/syntax"

// Unused returns the declarations local to a block that no name refers
// to, in the order they completed. Declarations at file level and
// procedure arguments are never reported.
func (info *Info) Unused() []*syntax.Declaration {
	used := make(map[syntax.Node]bool, len(info.Uses))
	for _, target := range info.Uses {
		used[target] = true
	}

	var unused []*syntax.Declaration
	for _, d := range info.Decls {
		if !used[d] && isLocal(d) {
			unused = append(unused, d)
		}
	}
	return unused
}

// isLocal reports whether d is a statement of a scope nested in the file
// scope. Arguments live in the Extra list of the procedure body instead.
func isLocal(d *syntax.Declaration) bool {
	s := d.Scope()
	if s == nil || s.Scope() == nil {
		return false
	}
	i := d.Slot()
	return i < len(s.Stmts) && s.Stmts[i] == syntax.Stmt(d)
}
