package png

// Rule is an explicit, named structural rule over a parsed container.
//
// ID must be stable across versions.
// Apply must be deterministic and side-effect free.
type Rule struct {
	ID    string
	Apply func(*Png) error
}

func (r Rule) apply(p *Png) error {
	if r.Apply == nil {
		return newError(KindInternal, "PNG-INTERNAL-001", "nil rule Apply")
	}
	return r.Apply(p)
}

// ValidateRules runs rules in order, returning the first failure.
//
// Determinism note: rule order is the evaluation order; keep it stable.
func ValidateRules(p *Png, rules []Rule) error {
	for _, r := range rules {
		if err := r.apply(p); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRulesAll runs all rules in order, returning a (deterministically
// ordered) slice of all violations.
func ValidateRulesAll(p *Png, rules []Rule) []error {
	var out []error
	for _, r := range rules {
		if err := r.apply(p); err != nil {
			out = append(out, err)
		}
	}
	return out
}

// StructuralRules is the opt-in post-decode pass covering the PNG ordering
// constraints the codec itself deliberately leaves unchecked: exactly one
// IHDR at the front, IEND at the back, nothing after IEND.
func StructuralRules() []Rule {
	return []Rule{
		{ID: "PNG-STRUCT-001", Apply: func(p *Png) error {
			if p.ChunkByType("IHDR") == nil {
				return newError(KindStructure, "PNG-STRUCT-001", "missing IHDR chunk")
			}
			return nil
		}},
		{ID: "PNG-STRUCT-002", Apply: func(p *Png) error {
			// A missing IHDR is 001's finding; this rule only judges position.
			if p.ChunkByType("IHDR") != nil && p.chunks[0].Type().String() != "IHDR" {
				return newError(KindStructure, "PNG-STRUCT-002", "IHDR is not the first chunk")
			}
			return nil
		}},
		{ID: "PNG-STRUCT-003", Apply: func(p *Png) error {
			n := 0
			for _, c := range p.chunks {
				if c.Type().String() == "IHDR" {
					n++
				}
			}
			if n > 1 {
				return newError(KindStructure, "PNG-STRUCT-003", "more than one IHDR chunk")
			}
			return nil
		}},
		{ID: "PNG-STRUCT-004", Apply: func(p *Png) error {
			if p.ChunkByType("IEND") == nil {
				return newError(KindStructure, "PNG-STRUCT-004", "missing IEND chunk")
			}
			return nil
		}},
		{ID: "PNG-STRUCT-005", Apply: func(p *Png) error {
			for i, c := range p.chunks {
				if c.Type().String() == "IEND" && i != len(p.chunks)-1 {
					return newError(KindStructure, "PNG-STRUCT-005", "IEND is not the last chunk")
				}
			}
			return nil
		}},
	}
}
