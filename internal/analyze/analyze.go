// Package analyze runs the downstream extraction stages over a segmented
// transcript: keywords, business and technical processes, technologies, and
// a closing summary. Every stage degrades to a heuristic fallback instead
// of failing the pipeline.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"transcript-agents/internal/llm"
	"transcript-agents/internal/report"
	"transcript-agents/internal/segment"
)

const (
	structuredRetries = 2
	minProcessSteps   = 2
	minKeywordLength  = 3
	minTechDescLength = 11
)

// Input bundles what the analyzer needs about one transcript.
type Input struct {
	VideoTitle string
	VideoID    string
	Transcript string
	Segments   []segment.Segment
	Stats      segment.Stats
}

// Analyzer drives the extraction stages against an LLM backend.
type Analyzer struct {
	llm         llm.Client
	log         *slog.Logger
	temperature float64
}

func New(client llm.Client, log *slog.Logger, temperature float64) *Analyzer {
	return &Analyzer{llm: client, log: log, temperature: temperature}
}

// Run executes all stages sequentially and assembles the report.
func (a *Analyzer) Run(ctx context.Context, in Input) report.Report {
	rep := report.Report{
		VideoTitle:  in.VideoTitle,
		VideoID:     in.VideoID,
		Segments:    in.Segments,
		Stats:       in.Stats,
		GeneratedAt: time.Now().UTC(),
	}
	rep.Keywords = a.Keywords(ctx, in)
	rep.BusinessProcesses = a.BusinessProcesses(ctx, in)
	rep.TechnicalProcesses = a.TechnicalProcesses(ctx, in)
	rep.Technologies = a.Technologies(ctx, in)
	rep.Summary = a.Summarize(ctx, in, rep)
	return rep
}

// Keywords extracts marketing keywords, filtering short and stopword
// entries. On failure the keywords come from the title and segment topics.
func (a *Analyzer) Keywords(ctx context.Context, in Input) []string {
	var segmentsText strings.Builder
	for _, seg := range in.Segments {
		fmt.Fprintf(&segmentsText, "SEGMENT: %s\n%s\n\n", seg.Topic, seg.Content)
	}

	prompt := fmt.Sprintf(`Extract marketing keywords from this transcript that would be valuable for:
- SEO and search visibility
- Target audience identification
- Marketing campaign focus
- Content categorization

VIDEO TITLE: %s
VIDEO ID: %s

TRANSCRIPT CONTENT:
%s
Extract ONLY keywords that have clear marketing value and relevance.
Return just the keywords without explanations.`, in.VideoTitle, in.VideoID, segmentsText.String())

	var list report.KeywordList
	err := llm.CallStructured(ctx, a.llm, llm.Request{
		Prompt:      prompt,
		SchemaName:  "extract_marketing_keywords",
		Schema:      report.KeywordListSchema(),
		Temperature: a.temperature,
	}, structuredRetries, &list)
	if err != nil {
		a.log.Warn("keyword extraction failed, deriving from topics", "err", err)
		return keywordsFromTopics(in)
	}

	keywords := filterKeywords(list.Keywords)
	a.log.Info("extracted marketing keywords", "count", len(keywords))
	return keywords
}

// BusinessProcesses extracts business processes with at least two steps.
func (a *Analyzer) BusinessProcesses(ctx context.Context, in Input) []report.Process {
	prompt := fmt.Sprintf(`Identify business processes described in this transcript.

VIDEO TITLE: %s
VIDEO ID: %s

TRANSCRIPT:
%s

For each business process:
1. Provide a clear name and description
2. List all steps in the process in order
3. Specify if the process is directly described (direct) or inferred from context (inferred)
4. Include verbatim transcript references that evidence this process

Only include processes with strong evidence. Maintain high precision over recall.
Focus on workflows, procedures, and methodologies relevant to businesses.`, in.VideoTitle, in.VideoID, in.Transcript)

	processes, err := a.extractProcesses(ctx, prompt, "extract_business_processes")
	if err != nil {
		a.log.Warn("business process extraction failed, scanning segments", "err", err)
		return processesFromSegments(in.Segments, businessIndicators)
	}
	a.log.Info("extracted business processes", "count", len(processes))
	return processes
}

// TechnicalProcesses extracts technical processes with at least two steps.
func (a *Analyzer) TechnicalProcesses(ctx context.Context, in Input) []report.Process {
	prompt := fmt.Sprintf(`Identify technical processes described in this transcript.

VIDEO TITLE: %s
VIDEO ID: %s

TRANSCRIPT:
%s

For each technical process:
1. Provide a clear name and description
2. List all steps in the process in order
3. Specify if the process is directly described (direct) or inferred from context (inferred)
4. Include verbatim transcript references that evidence this process

Focus on technical implementation details, coding procedures, system configuration,
infrastructure setup, and technical workflows. Only include processes with strong
evidence. Maintain high precision over recall.`, in.VideoTitle, in.VideoID, in.Transcript)

	processes, err := a.extractProcesses(ctx, prompt, "extract_technical_processes")
	if err != nil {
		a.log.Warn("technical process extraction failed, scanning segments", "err", err)
		return processesFromSegments(in.Segments, technicalIndicators)
	}
	a.log.Info("extracted technical processes", "count", len(processes))
	return processes
}

func (a *Analyzer) extractProcesses(ctx context.Context, prompt, name string) ([]report.Process, error) {
	var list report.ProcessList
	err := llm.CallStructured(ctx, a.llm, llm.Request{
		Prompt:      prompt,
		SchemaName:  name,
		Schema:      report.ProcessListSchema(),
		Temperature: a.temperature,
	}, structuredRetries, &list)
	if err != nil {
		return nil, err
	}

	var processes []report.Process
	for _, p := range list.Processes {
		proc := p.ToProcess()
		// Processes with fewer than two steps carry too little detail.
		if len(proc.Steps) < minProcessSteps {
			continue
		}
		processes = append(processes, proc)
	}
	return processes, nil
}

// Technologies extracts the technologies mentioned in the transcript.
func (a *Analyzer) Technologies(ctx context.Context, in Input) []report.Technology {
	prompt := fmt.Sprintf(`Extract all technologies mentioned in this transcript.

VIDEO TITLE: %s
VIDEO ID: %s

TRANSCRIPT:
%s

For each technology:
1. Provide the exact name as mentioned
2. Categorize it (e.g., "database", "programming language", "cloud service")
3. Provide a brief description
4. Specify if the technology is directly mentioned (direct) or inferred from context (inferred)
5. Include verbatim transcript references

Be comprehensive but precise - only include technologies with clear evidence.
Include software, programming languages, frameworks, libraries, platforms,
cloud services, hardware, and other technical tools.`, in.VideoTitle, in.VideoID, in.Transcript)

	var list report.TechnologyList
	err := llm.CallStructured(ctx, a.llm, llm.Request{
		Prompt:      prompt,
		SchemaName:  "extract_technologies",
		Schema:      report.TechnologyListSchema(),
		Temperature: a.temperature,
	}, structuredRetries, &list)
	if err != nil {
		a.log.Warn("technology extraction failed, matching lexicon", "err", err)
		return technologiesFromLexicon(in.Transcript)
	}

	var technologies []report.Technology
	for _, t := range list.Technologies {
		tech := t.ToTechnology()
		if len(tech.Name) <= 1 || len(tech.Description) < minTechDescLength {
			continue
		}
		technologies = append(technologies, tech)
	}
	a.log.Info("extracted technologies", "count", len(technologies))
	return technologies
}

// Summarize produces the free-text summary, falling back to a templated
// one built from the stage counts.
func (a *Analyzer) Summarize(ctx context.Context, in Input, rep report.Report) string {
	prompt := fmt.Sprintf(`Create a comprehensive analysis summary for this transcript.

VIDEO TITLE: %s

KEYWORDS: %s

BUSINESS PROCESSES: %d identified
TECHNICAL PROCESSES: %d identified
TECHNOLOGIES: %s

TRANSCRIPT:
%s`, in.VideoTitle, strings.Join(rep.Keywords, ", "),
		len(rep.BusinessProcesses), len(rep.TechnicalProcesses),
		technologyNames(rep.Technologies), in.Transcript)

	var sum report.SummaryGeneration
	err := llm.CallStructured(ctx, a.llm, llm.Request{
		Prompt:      prompt,
		SchemaName:  "generate_summary",
		Schema:      report.SummarySchema(),
		Temperature: a.temperature,
	}, structuredRetries, &sum)
	if err != nil || sum.Summary == "" {
		a.log.Warn("summary generation failed, using templated summary", "err", err)
		return fmt.Sprintf(
			"Analysis of %q identified %d segments, %d marketing keywords, %d business processes, %d technical processes, and %d technologies.",
			in.VideoTitle, len(in.Segments), len(rep.Keywords),
			len(rep.BusinessProcesses), len(rep.TechnicalProcesses), len(rep.Technologies))
	}
	return sum.Summary
}

func technologyNames(techs []report.Technology) string {
	names := make([]string, 0, len(techs))
	for _, t := range techs {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
