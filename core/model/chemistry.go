package model

// Chemistry identifies the electrochemical couple of a cell. The set is
// closed: every supported chemistry has a dedicated cell-model factory and
// anything else is a configuration error, never a fallback.
type Chemistry int

const (
	ChemistryNMC Chemistry = iota
	ChemistryLFP
)

// Chemistries returns the closed set of supported chemistries.
func Chemistries() []Chemistry {
	return []Chemistry{ChemistryNMC, ChemistryLFP}
}

// String returns the canonical tag for the chemistry.
func (c Chemistry) String() string {
	switch c {
	case ChemistryNMC:
		return "NMC"
	case ChemistryLFP:
		return "LFP"
	default:
		return "unknown"
	}
}

// Valid reports whether c belongs to the closed set.
func (c Chemistry) Valid() bool {
	switch c {
	case ChemistryNMC, ChemistryLFP:
		return true
	default:
		return false
	}
}

// ParseChemistry maps a configuration tag onto the closed set. Matching is
// exact and case-sensitive; an unrecognized tag yields an
// UnsupportedChemistryError.
func ParseChemistry(tag string) (Chemistry, error) {
	switch tag {
	case "NMC":
		return ChemistryNMC, nil
	case "LFP":
		return ChemistryLFP, nil
	default:
		return 0, &UnsupportedChemistryError{Tag: tag}
	}
}
