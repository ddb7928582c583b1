package admission

// Grants is a static set of capability names, enough for hosts whose
// entitlements are known up front (and for the CLI).
type Grants map[string]struct{}

func NewGrants(names ...string) Grants {
	g := make(Grants, len(names))
	for _, name := range names {
		g[name] = struct{}{}
	}
	return g
}

func (g Grants) HasCapability(name string) bool {
	_, ok := g[name]
	return ok
}
