package llm

import (
	"context"
	"encoding/json"
)

// MockClient returns fixed, kind-specific canned results. It performs no
// network I/O and is the default provider in dev and tests.
type MockClient struct{}

var cannedResults = map[string]string{
	"resume": `{
  "summary": "Seasoned professional with a track record of shipping reliable software and collaborating across teams.",
  "emphasize": ["Highlight measurable outcomes in recent roles", "Lead with technologies named in the job description"],
  "additions": ["Add a short metrics-driven achievement for each recent position"],
  "atsKeywords": ["collaboration", "ownership", "delivery"],
  "matchScore": 72
}`,
	"cover_letter": `{
  "greeting": "Dear Hiring Manager,",
  "opening": "I am excited to apply for this role; my background aligns closely with the responsibilities described.",
  "bodyParagraphs": [
    "My recent experience maps directly onto the core requirements of the position.",
    "I am drawn to the team's mission and believe I can contribute from day one."
  ],
  "closing": "Thank you for your consideration. I look forward to speaking with you."
}`,
	"skills_optimization": `{
  "strengths": ["Core skills align with the posting's primary requirements"],
  "gaps": ["Consider adding explicit experience with the secondary tooling mentioned in the posting"],
  "recommendations": ["Reorder the skills section to lead with the posting's must-haves"]
}`,
	"experience_tailoring": `{
  "summary": "Experience reframed to foreground the responsibilities closest to the target role.",
  "emphasize": ["Quantify scope and impact in the most recent position"],
  "bulletRewrites": [
    {"before": "Worked on backend services", "after": "Designed and operated backend services supporting production traffic"}
  ]
}`,
	"company_research": `{
  "overview": "The company operates in a competitive market and emphasizes product-led growth.",
  "culture": "Collaborative, with a stated focus on ownership and customer empathy.",
  "recentNews": ["Recent product launches suggest active investment in the platform"],
  "interviewQuestions": ["How does the team measure success for this role?"],
  "talkingPoints": ["Relate past delivery experience to the company's current initiatives"]
}`,
}

func (MockClient) Generate(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	canned, ok := cannedResults[req.Kind]
	if !ok {
		return Result{
			Text: "No canned output is defined for this generation kind.",
			Meta: Meta{Provider: "mock", Model: req.Model},
		}, nil
	}
	return Result{
		JSON:   json.RawMessage(canned),
		Tokens: Usage{Prompt: len(req.Prompt) / 4, Completion: len(canned) / 4, Total: (len(req.Prompt) + len(canned)) / 4},
		Meta:   Meta{Provider: "mock", Model: req.Model},
	}, nil
}

var _ Client = MockClient{}
