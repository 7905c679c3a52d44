package ctrlperm

// Grants is a set of granted permissions checked as a whole. Order carries no
// meaning and duplicates are harmless.
type Grants []Permission

// Implies reports whether any granted permission implies the required one. An
// empty set denies everything.
func (g Grants) Implies(required Permission) bool {
	for _, p := range g {
		if p.Implies(required) {
			return true
		}
	}
	return false
}
