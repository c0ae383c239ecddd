package value

import (
	"strings"
	"sync"
)

// Symbol is an interned word spelling. Two words with the same spelling
// share one Symbol, so identity comparison works across scans. Canon
// points at the symbol for the lowercased spelling, which is the unit of
// word equivalence (words compare case-insensitively).
type Symbol struct {
	Name  string
	Canon *Symbol
}

var (
	symMu   sync.Mutex
	symbols = map[string]*Symbol{}
)

// Intern returns the unique Symbol for a spelling, creating it on first
// use. Safe for concurrent use.
func Intern(name string) *Symbol {
	symMu.Lock()
	defer symMu.Unlock()
	return internLocked(name)
}

// InternedNames returns a snapshot of every interned spelling.
func InternedNames() []string {
	symMu.Lock()
	defer symMu.Unlock()
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		names = append(names, name)
	}
	return names
}

func internLocked(name string) *Symbol {
	if s, ok := symbols[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	symbols[name] = s

	lower := strings.ToLower(name)
	if lower == name {
		s.Canon = s
	} else {
		s.Canon = internLocked(lower)
	}
	return s
}
