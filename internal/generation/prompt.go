package generation

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	//go:embed prompts/resume_v1.txt
	promptResumeV1 string
	//go:embed prompts/cover_letter_v1.txt
	promptCoverLetterV1 string
	//go:embed prompts/skills_optimization_v1.txt
	promptSkillsOptimizationV1 string
	//go:embed prompts/experience_tailoring_v1.txt
	promptExperienceTailoringV1 string
	//go:embed prompts/company_research_v1.txt
	promptCompanyResearchV1 string
)

const promptTemplateVersion = "v1"

const defaultTone = "professional"

// PromptBuilder turns an AggregatedContext into a bounded provider
// instruction. Building is pure: identical inputs produce byte-identical
// prompts, and no timestamps enter the prompt body.
type PromptBuilder struct {
	// MaxFieldChars caps short free-text fields (notes, summaries, names).
	MaxFieldChars int
	// MaxDescriptionChars caps the job description, which carries the most
	// signal and so gets the larger budget.
	MaxDescriptionChars int
}

// Build assembles the prompt for a kind. It never fails for a valid
// context; missing collections simply render as "(none)".
func (b PromptBuilder) Build(kind Kind, aggCtx AggregatedContext, opts Options) PromptSpec {
	template := promptResumeV1
	switch kind {
	case KindCoverLetter:
		template = promptCoverLetterV1
	case KindSkillsOptimization:
		template = promptSkillsOptimizationV1
	case KindExperienceTailoring:
		template = promptExperienceTailoringV1
	case KindCompanyResearch:
		template = promptCompanyResearchV1
	}

	tone := strings.TrimSpace(opts.Tone)
	if tone == "" {
		tone = defaultTone
	}

	truncated := false
	clip := func(s string, max int) string {
		out, cut := capField(s, max)
		if cut {
			truncated = true
		}
		return out
	}

	replacer := strings.NewReplacer(
		"{{PROFILE}}", b.renderProfile(aggCtx, clip),
		"{{JOB}}", b.renderJob(aggCtx, clip),
		"{{SKILLS}}", b.renderSkills(aggCtx, clip),
		"{{EMPLOYMENT}}", b.renderEmployment(aggCtx, clip),
		"{{EDUCATION}}", b.renderEducation(aggCtx, clip),
		"{{PROJECTS}}", b.renderProjects(aggCtx, clip),
		"{{CERTIFICATIONS}}", b.renderCertifications(aggCtx, clip),
		"{{TONE}}", clip(tone, 60),
	)

	return PromptSpec{
		Prompt:          strings.TrimSpace(replacer.Replace(template)) + "\n",
		Kind:            kind,
		TemplateVersion: promptTemplateVersion,
		Truncated:       truncated,
	}
}

type capFunc func(s string, max int) string

func (b PromptBuilder) renderProfile(aggCtx AggregatedContext, clip capFunc) string {
	p := aggCtx.Profile
	var sb strings.Builder
	writeField(&sb, "Name", clip(p.FullName, b.fieldMax()))
	writeField(&sb, "Headline", clip(p.Headline, b.fieldMax()))
	writeField(&sb, "Location", clip(p.Location, b.fieldMax()))
	writeField(&sb, "Summary", clip(p.Summary, b.fieldMax()))
	if sb.Len() == 0 {
		return "(none)"
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b PromptBuilder) renderJob(aggCtx AggregatedContext, clip capFunc) string {
	j := aggCtx.Job
	var sb strings.Builder
	writeField(&sb, "Title", clip(j.Title, b.fieldMax()))
	writeField(&sb, "Company", clip(j.Company, b.fieldMax()))
	writeField(&sb, "Location", clip(j.Location, b.fieldMax()))
	writeField(&sb, "Description", clip(j.Description, b.descriptionMax()))
	writeField(&sb, "Notes", clip(j.Notes, b.fieldMax()))
	if sb.Len() == 0 {
		return "(none)"
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b PromptBuilder) renderSkills(aggCtx AggregatedContext, clip capFunc) string {
	if len(aggCtx.Skills) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(aggCtx.Skills))
	for _, s := range aggCtx.Skills {
		line := clip(s.Name, b.fieldMax())
		if s.Level != "" {
			line += " (" + clip(s.Level, 40) + ")"
		}
		if s.Years > 0 {
			line += ", " + strconv.Itoa(s.Years) + "y"
		}
		lines = append(lines, "- "+line)
	}
	return strings.Join(lines, "\n")
}

func (b PromptBuilder) renderEmployment(aggCtx AggregatedContext, clip capFunc) string {
	if len(aggCtx.Employment) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(aggCtx.Employment))
	for _, e := range aggCtx.Employment {
		line := fmt.Sprintf("- %s at %s", clip(e.Title, b.fieldMax()), clip(e.Company, b.fieldMax()))
		if span := dateSpan(e.StartDate, e.EndDate); span != "" {
			line += " (" + span + ")"
		}
		if e.Description != "" {
			line += ": " + clip(e.Description, b.fieldMax())
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (b PromptBuilder) renderEducation(aggCtx AggregatedContext, clip capFunc) string {
	if len(aggCtx.Education) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(aggCtx.Education))
	for _, e := range aggCtx.Education {
		line := "- " + clip(e.School, b.fieldMax())
		if e.Degree != "" {
			line += ", " + clip(e.Degree, b.fieldMax())
		}
		if e.Field != "" {
			line += " in " + clip(e.Field, b.fieldMax())
		}
		if e.EndYear > 0 {
			line += " (" + strconv.Itoa(e.EndYear) + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (b PromptBuilder) renderProjects(aggCtx AggregatedContext, clip capFunc) string {
	if len(aggCtx.Projects) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(aggCtx.Projects))
	for _, p := range aggCtx.Projects {
		line := "- " + clip(p.Name, b.fieldMax())
		if p.Description != "" {
			line += ": " + clip(p.Description, b.fieldMax())
		}
		if len(p.Technologies) > 0 {
			line += " [" + clip(strings.Join(p.Technologies, ", "), b.fieldMax()) + "]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (b PromptBuilder) renderCertifications(aggCtx AggregatedContext, clip capFunc) string {
	if len(aggCtx.Certifications) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(aggCtx.Certifications))
	for _, c := range aggCtx.Certifications {
		line := "- " + clip(c.Name, b.fieldMax())
		if c.Issuer != "" {
			line += " (" + clip(c.Issuer, b.fieldMax()) + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (b PromptBuilder) fieldMax() int {
	if b.MaxFieldChars > 0 {
		return b.MaxFieldChars
	}
	return 600
}

func (b PromptBuilder) descriptionMax() int {
	if b.MaxDescriptionChars > 0 {
		return b.MaxDescriptionChars
	}
	return 6000
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString(label)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

// capField collapses runs of whitespace to single spaces and truncates to
// max characters. Truncation is idempotent: capping an already-capped
// string returns it unchanged.
func capField(s string, max int) (string, bool) {
	collapsed := strings.Join(strings.Fields(s), " ")
	if max <= 0 || len(collapsed) <= max {
		return collapsed, false
	}
	return strings.TrimRight(collapsed[:max], " "), true
}

func dateSpan(start, end *time.Time) string {
	if start == nil {
		return ""
	}
	from := start.Format("2006-01")
	if end == nil {
		return from + " to present"
	}
	return from + " to " + end.Format("2006-01")
}
