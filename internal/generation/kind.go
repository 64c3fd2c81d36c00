package generation

import "strings"

// Kind identifies which generation workflow and output contract applies.
// Every specialization is a first-class kind; none is stored as metadata
// under another kind.
type Kind string

const (
	KindResume              Kind = "resume"
	KindCoverLetter         Kind = "cover_letter"
	KindSkillsOptimization  Kind = "skills_optimization"
	KindExperienceTailoring Kind = "experience_tailoring"
	KindCompanyResearch     Kind = "company_research"
)

// Kinds lists the recognized generation kinds in stable order.
func Kinds() []Kind {
	return []Kind{
		KindResume,
		KindCoverLetter,
		KindSkillsOptimization,
		KindExperienceTailoring,
		KindCompanyResearch,
	}
}

// ParseKind validates a raw kind string. The empty Kind and false are
// returned for unrecognized values.
func ParseKind(raw string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case KindResume, KindCoverLetter, KindSkillsOptimization, KindExperienceTailoring, KindCompanyResearch:
		return k, true
	default:
		return "", false
	}
}

func (k Kind) String() string { return string(k) }

// needsEnrichment reports whether aggregation must also load the profile
// collections (skills, employment, education, projects, certifications).
func (k Kind) needsEnrichment() bool {
	switch k {
	case KindResume, KindExperienceTailoring, KindSkillsOptimization:
		return true
	default:
		return false
	}
}
