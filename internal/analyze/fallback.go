package analyze

import (
	"fmt"
	"sort"
	"strings"

	"transcript-agents/internal/report"
	"transcript-agents/internal/segment"
)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true,
}

var businessIndicators = []string{
	"process", "workflow", "procedure", "method", "approach", "steps",
	"implementation", "deployment", "installation", "setup", "configuration",
}

var technicalIndicators = []string{
	"installation", "setup", "configuration", "deployment", "implementation",
	"coding", "programming", "building", "development", "integration",
	"testing", "execution", "compiling", "running", "launching",
}

// techLexicon backs the last-resort technology scan.
var techLexicon = map[string][]string{
	"programming language": {"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust", "PHP", "Ruby"},
	"framework":            {"React", "Angular", "Vue", "Django", "Flask", "Spring", "Express", "Rails", "Laravel"},
	"database":             {"MySQL", "PostgreSQL", "MongoDB", "Redis", "SQLite", "Oracle", "Cassandra", "Elasticsearch"},
	"cloud service":        {"AWS", "Azure", "Google Cloud", "Heroku", "DigitalOcean", "Kubernetes", "Docker"},
}

// filterKeywords dedupes and drops short or stopword entries.
func filterKeywords(keywords []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, kw := range keywords {
		if len(kw) < minKeywordLength || stopwords[strings.ToLower(kw)] {
			continue
		}
		if seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

// keywordsFromTopics derives keywords from the video title and segment
// topics, skipping generic section labels.
func keywordsFromTopics(in Input) []string {
	seen := make(map[string]bool)
	add := func(word string) {
		if len(word) <= minKeywordLength || stopwords[strings.ToLower(word)] {
			return
		}
		seen[word] = true
	}

	for _, word := range strings.Fields(in.VideoTitle) {
		add(word)
	}
	for _, seg := range in.Segments {
		topic := strings.ToLower(seg.Topic)
		if topic == "introduction" || topic == "conclusion" || topic == "summary" || strings.Contains(topic, "section") {
			continue
		}
		for _, word := range strings.Fields(seg.Topic) {
			add(word)
		}
	}

	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// processesFromSegments scans segment topics and leading content for
// process-indicator words and emits minimal inferred processes.
func processesFromSegments(segments []segment.Segment, indicators []string) []report.Process {
	var processes []report.Process
	for _, seg := range segments {
		name, ok := matchIndicator(seg, indicators)
		if !ok {
			continue
		}
		processes = append(processes, report.Process{
			Name:        name,
			Description: fmt.Sprintf("Process extracted from segment: %s", seg.Topic),
			Steps:       []string{"Step identified from transcript"},
			Inference:   report.InferenceInferred,
			References:  []string{snippet(seg.Content, 100)},
		})
	}
	return processes
}

func matchIndicator(seg segment.Segment, indicators []string) (string, bool) {
	topic := strings.ToLower(seg.Topic)
	for _, indicator := range indicators {
		if strings.Contains(topic, indicator) {
			return seg.Topic, true
		}
	}

	words := strings.Fields(seg.Content)
	if len(words) > 30 {
		words = words[:30]
	}
	contentStart := strings.ToLower(strings.Join(words, " "))
	for _, indicator := range indicators {
		if strings.Contains(contentStart, indicator) {
			name, _, _ := strings.Cut(seg.Content, ".")
			name = strings.TrimSpace(name)
			if name == "" {
				name = fmt.Sprintf("Process from %s", seg.Topic)
			} else if len(name) > 50 {
				name = name[:50] + "..."
			}
			return name, true
		}
	}
	return "", false
}

// technologiesFromLexicon pattern-matches known technology names against
// the transcript.
func technologiesFromLexicon(transcript string) []report.Technology {
	var technologies []report.Technology
	categories := make([]string, 0, len(techLexicon))
	for category := range techLexicon {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, name := range techLexicon[category] {
			if !containsWord(transcript, name) {
				continue
			}
			technologies = append(technologies, report.Technology{
				Name:        name,
				Category:    category,
				Description: fmt.Sprintf("%s mentioned in the transcript", name),
				Inference:   report.InferenceDirect,
				References:  nil,
			})
		}
	}
	return technologies
}

func containsWord(text, word string) bool {
	lowerText := strings.ToLower(text)
	lowerWord := strings.ToLower(word)
	idx := 0
	for {
		i := strings.Index(lowerText[idx:], lowerWord)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(lowerWord)
		beforeOK := start == 0 || !isWordChar(lowerText[start-1])
		afterOK := end == len(lowerText) || !isWordChar(lowerText[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

func snippet(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n] + "..."
}
