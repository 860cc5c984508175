package png

import "xdao.co/stegpng/compliance"

// Validate runs the structural pass selected by mode.
//
// Permissive accepts everything the codec accepted. Strict runs
// StructuralRules and returns the first violation. Validation is separate
// from parsing on purpose: a stego tool must be able to open and rewrite
// carriers whose ordering is already sloppy.
func Validate(p *Png, mode compliance.ComplianceMode) error {
	if mode != compliance.Strict {
		return nil
	}
	return ValidateRules(p, StructuralRules())
}
