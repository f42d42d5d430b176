// Package report defines the analysis report produced for a transcript and
// the shapes the extraction stages decode into.
package report

import (
	"strings"
	"time"

	"transcript-agents/internal/schema"
	"transcript-agents/internal/segment"
)

// InferenceType marks whether a finding was stated outright in the
// transcript or inferred from context.
type InferenceType string

const (
	InferenceDirect   InferenceType = "direct"
	InferenceInferred InferenceType = "inferred"
)

// ParseInferenceType is case-insensitive; anything unrecognized counts as
// inferred, the weaker claim.
func ParseInferenceType(s string) InferenceType {
	if strings.EqualFold(s, string(InferenceDirect)) {
		return InferenceDirect
	}
	return InferenceInferred
}

// Process is a business or technical process identified in the transcript.
type Process struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Steps       []string      `json:"steps"`
	Inference   InferenceType `json:"inference_type"`
	References  []string      `json:"transcript_references"`
}

// Technology is a technology mentioned in the transcript.
type Technology struct {
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Inference   InferenceType `json:"inference_type"`
	References  []string      `json:"transcript_references"`
}

// Report is the complete analysis output for one transcript.
type Report struct {
	VideoTitle         string            `json:"video_title"`
	VideoID            string            `json:"video_id"`
	Keywords           []string          `json:"marketing_keywords"`
	BusinessProcesses  []Process         `json:"business_processes"`
	TechnicalProcesses []Process         `json:"technical_processes"`
	Technologies       []Technology      `json:"technologies"`
	Summary            string            `json:"summary"`
	Segments           []segment.Segment `json:"segments,omitempty"`
	Stats              segment.Stats     `json:"stats"`
	GeneratedAt        time.Time         `json:"generated_at"`
}

// Wire shapes for the structured extraction calls. Steps come back as
// objects with an order so the model keeps them sequenced.

type KeywordList struct {
	Keywords []string `json:"keywords"`
}

type ProcessStep struct {
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type ProcessExtraction struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Steps         []ProcessStep `json:"steps"`
	InferenceType string        `json:"inference_type"`
	References    []string      `json:"transcript_references"`
}

type ProcessList struct {
	Processes []ProcessExtraction `json:"processes"`
}

type TechnologyExtraction struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	InferenceType string   `json:"inference_type"`
	References    []string `json:"transcript_references"`
}

type TechnologyList struct {
	Technologies []TechnologyExtraction `json:"technologies"`
}

type SummaryGeneration struct {
	Summary string `json:"summary"`
}

func KeywordListSchema() schema.Schema {
	return schema.Object(map[string]schema.Schema{
		"keywords": schema.Array(schema.String("marketing keyword"), "keywords with marketing value"),
	})
}

func processStepSchema() schema.Schema {
	return schema.Object(map[string]schema.Schema{
		"description": schema.String("what this step does"),
		"order":       schema.Integer("1-based position in the process"),
	})
}

func ProcessListSchema() schema.Schema {
	return schema.Object(map[string]schema.Schema{
		"processes": schema.Array(schema.Object(map[string]schema.Schema{
			"name":                  schema.String("process name"),
			"description":           schema.String("what the process accomplishes"),
			"steps":                 schema.Array(processStepSchema(), "ordered steps"),
			"inference_type":        schema.String("direct or inferred"),
			"transcript_references": schema.Array(schema.String("verbatim snippet"), "evidence from the transcript"),
		}), "identified processes"),
	})
}

func TechnologyListSchema() schema.Schema {
	return schema.Object(map[string]schema.Schema{
		"technologies": schema.Array(schema.Object(map[string]schema.Schema{
			"name":                  schema.String("technology name as mentioned"),
			"category":              schema.String("e.g. database, programming language, cloud service"),
			"description":           schema.String("brief description"),
			"inference_type":        schema.String("direct or inferred"),
			"transcript_references": schema.Array(schema.String("verbatim snippet"), "evidence from the transcript"),
		}), "technologies mentioned"),
	})
}

func SummarySchema() schema.Schema {
	return schema.Object(map[string]schema.Schema{
		"summary": schema.String("comprehensive analysis summary"),
	})
}

// ToProcess converts a wire extraction into the report form.
func (p ProcessExtraction) ToProcess() Process {
	steps := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		steps = append(steps, s.Description)
	}
	return Process{
		Name:        p.Name,
		Description: p.Description,
		Steps:       steps,
		Inference:   ParseInferenceType(p.InferenceType),
		References:  p.References,
	}
}

// ToTechnology converts a wire extraction into the report form.
func (t TechnologyExtraction) ToTechnology() Technology {
	return Technology{
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Inference:   ParseInferenceType(t.InferenceType),
		References:  t.References,
	}
}
