package generation

import (
	"encoding/json"
	"strings"

	"jobtrack-backend/internal/llm"
)

// requiredKeys lists the top-level keys a kind's content contract requires.
// Normalization fails only when every one of them is absent from the
// provider JSON and no free text was returned.
var requiredKeys = map[Kind][]string{
	KindResume:              {"summary", "orderedSkills"},
	KindCoverLetter:         {"opening", "bodyParagraphs", "closing"},
	KindSkillsOptimization:  {"strengths", "gaps", "recommendations"},
	KindExperienceTailoring: {"summary", "bulletRewrites"},
	KindCompanyResearch:     {"overview"},
}

// Normalize coerces a provider result into the kind's content contract.
// Sparse JSON keeps whatever it supports, unknown fields are dropped, and
// plain text falls back to a minimal shape. Required keys are always
// present in the returned map; optional fields the output cannot support
// are omitted rather than null-stuffed. Collections the model left out are
// filled from the aggregated context so the artifact reflects the
// candidate's actual data.
func Normalize(kind Kind, res llm.Result, aggCtx AggregatedContext) (map[string]any, *Error) {
	var top map[string]any
	if len(res.JSON) > 0 {
		if err := json.Unmarshal(res.JSON, &top); err != nil {
			top = nil
		}
	}

	if hasAnyKey(top, requiredKeys[kind]) {
		content := shapeFromJSON(kind, res.JSON)
		enrichFromContext(kind, content, aggCtx)
		return content, nil
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		return nil, malformedOutput("provider output contains none of the required fields")
	}
	content := shapeFromText(kind, text)
	enrichFromContext(kind, content, aggCtx)
	return content, nil
}

func hasAnyKey(top map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := top[k]; ok {
			return true
		}
	}
	return false
}

type resumeContent struct {
	Summary       string              `json:"summary"`
	OrderedSkills []string            `json:"orderedSkills"`
	Emphasize     []string            `json:"emphasize"`
	Additions     []string            `json:"additions"`
	ATSKeywords   []string            `json:"atsKeywords"`
	MatchScore    *float64            `json:"matchScore"`
	Sections      map[string][]string `json:"sections"`
}

type coverLetterContent struct {
	Greeting       string   `json:"greeting"`
	Opening        string   `json:"opening"`
	BodyParagraphs []string `json:"bodyParagraphs"`
	Closing        string   `json:"closing"`
}

type skillsContent struct {
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
	OrderedSkills   []string `json:"orderedSkills"`
}

type bulletRewrite struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type tailoringContent struct {
	Summary        string          `json:"summary"`
	Emphasize      []string        `json:"emphasize"`
	BulletRewrites []bulletRewrite `json:"bulletRewrites"`
}

type researchContent struct {
	Overview           string   `json:"overview"`
	Culture            string   `json:"culture"`
	RecentNews         []string `json:"recentNews"`
	InterviewQuestions []string `json:"interviewQuestions"`
	TalkingPoints      []string `json:"talkingPoints"`
}

func shapeFromJSON(kind Kind, raw json.RawMessage) map[string]any {
	switch kind {
	case KindCoverLetter:
		var parsed coverLetterContent
		_ = json.Unmarshal(raw, &parsed)
		content := map[string]any{
			"opening":        parsed.Opening,
			"bodyParagraphs": emptyIfNil(parsed.BodyParagraphs),
			"closing":        parsed.Closing,
		}
		putString(content, "greeting", parsed.Greeting)
		return content
	case KindSkillsOptimization:
		var parsed skillsContent
		_ = json.Unmarshal(raw, &parsed)
		content := map[string]any{
			"strengths":       emptyIfNil(parsed.Strengths),
			"gaps":            emptyIfNil(parsed.Gaps),
			"recommendations": emptyIfNil(parsed.Recommendations),
		}
		putStrings(content, "orderedSkills", parsed.OrderedSkills)
		return content
	case KindExperienceTailoring:
		var parsed tailoringContent
		_ = json.Unmarshal(raw, &parsed)
		rewrites := make([]map[string]any, 0, len(parsed.BulletRewrites))
		for _, r := range parsed.BulletRewrites {
			rewrites = append(rewrites, map[string]any{"before": r.Before, "after": r.After})
		}
		content := map[string]any{
			"summary":        parsed.Summary,
			"bulletRewrites": rewrites,
		}
		putStrings(content, "emphasize", parsed.Emphasize)
		return content
	case KindCompanyResearch:
		var parsed researchContent
		_ = json.Unmarshal(raw, &parsed)
		content := map[string]any{
			"overview": parsed.Overview,
		}
		putString(content, "culture", parsed.Culture)
		putStrings(content, "recentNews", parsed.RecentNews)
		putStrings(content, "interviewQuestions", parsed.InterviewQuestions)
		putStrings(content, "talkingPoints", parsed.TalkingPoints)
		return content
	default:
		var parsed resumeContent
		_ = json.Unmarshal(raw, &parsed)
		content := map[string]any{
			"summary":       parsed.Summary,
			"orderedSkills": emptyIfNil(parsed.OrderedSkills),
		}
		putStrings(content, "emphasize", parsed.Emphasize)
		putStrings(content, "additions", parsed.Additions)
		putStrings(content, "atsKeywords", parsed.ATSKeywords)
		if parsed.MatchScore != nil {
			content["matchScore"] = *parsed.MatchScore
		}
		if len(parsed.Sections) > 0 {
			sections := map[string]any{}
			for name, entries := range parsed.Sections {
				if len(entries) > 0 {
					sections[name] = entries
				}
			}
			if len(sections) > 0 {
				content["sections"] = sections
			}
		}
		return content
	}
}

// shapeFromText builds the minimal content shape for a kind out of plain
// text, using the text as the kind's primary field.
func shapeFromText(kind Kind, text string) map[string]any {
	switch kind {
	case KindCoverLetter:
		return map[string]any{
			"opening":        "",
			"bodyParagraphs": []string{text},
			"closing":        "",
		}
	case KindSkillsOptimization:
		return map[string]any{
			"strengths":       []string{},
			"gaps":            []string{},
			"recommendations": []string{text},
		}
	case KindExperienceTailoring:
		return map[string]any{
			"summary":        text,
			"bulletRewrites": []map[string]any{},
		}
	case KindCompanyResearch:
		return map[string]any{
			"overview": text,
		}
	default:
		return map[string]any{
			"summary":       text,
			"orderedSkills": []string{},
		}
	}
}

// enrichFromContext fills collection fields the model omitted with the
// candidate's actual data, so a sparse model response still yields an
// artifact grounded in the aggregated context.
func enrichFromContext(kind Kind, content map[string]any, aggCtx AggregatedContext) {
	switch kind {
	case KindResume:
		if stringsEmpty(content["orderedSkills"]) {
			content["orderedSkills"] = skillNames(aggCtx)
		}
		if _, ok := content["sections"]; !ok {
			sections := contextSections(aggCtx)
			if len(sections) > 0 {
				content["sections"] = sections
			}
		}
	case KindSkillsOptimization:
		if stringsEmpty(content["orderedSkills"]) {
			if names := skillNames(aggCtx); len(names) > 0 {
				content["orderedSkills"] = names
			}
		}
	case KindExperienceTailoring:
		if _, ok := content["sections"]; !ok {
			if exp := experienceLines(aggCtx); len(exp) > 0 {
				content["sections"] = map[string]any{"experience": exp}
			}
		}
	}
}

func contextSections(aggCtx AggregatedContext) map[string]any {
	sections := map[string]any{}
	if exp := experienceLines(aggCtx); len(exp) > 0 {
		sections["experience"] = exp
	}
	if len(aggCtx.Education) > 0 {
		lines := make([]string, 0, len(aggCtx.Education))
		for _, e := range aggCtx.Education {
			line := e.School
			if e.Degree != "" {
				line += ", " + e.Degree
			}
			if e.Field != "" {
				line += " in " + e.Field
			}
			lines = append(lines, line)
		}
		sections["education"] = lines
	}
	if len(aggCtx.Projects) > 0 {
		lines := make([]string, 0, len(aggCtx.Projects))
		for _, p := range aggCtx.Projects {
			lines = append(lines, p.Name)
		}
		sections["projects"] = lines
	}
	return sections
}

func experienceLines(aggCtx AggregatedContext) []string {
	lines := make([]string, 0, len(aggCtx.Employment))
	for _, e := range aggCtx.Employment {
		line := e.Title
		if e.Company != "" {
			line += " at " + e.Company
		}
		lines = append(lines, line)
	}
	return lines
}

func skillNames(aggCtx AggregatedContext) []string {
	names := make([]string, 0, len(aggCtx.Skills))
	for _, s := range aggCtx.Skills {
		names = append(names, s.Name)
	}
	return names
}

func stringsEmpty(v any) bool {
	list, ok := v.([]string)
	return !ok || len(list) == 0
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func putString(content map[string]any, key, value string) {
	if strings.TrimSpace(value) != "" {
		content[key] = value
	}
}

func putStrings(content map[string]any, key string, values []string) {
	if len(values) > 0 {
		content[key] = values
	}
}
