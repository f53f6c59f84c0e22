// Package resume turns free-form resume text into structured candidate data
// using a chat model in JSON mode.
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hrpilot/internal/llm"
)

// ErrEmptyResume is returned when no resume text is provided.
var ErrEmptyResume = errors.New("resume text is required")

// Experience is one work history entry.
type Experience struct {
	Role     string `json:"role"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

// Education is one education entry.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// Resume is the structured form of a parsed resume.
type Resume struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Summary    string       `json:"summary"`
}

const systemPrompt = "You are a helpful HR assistant that extracts structured data from resumes. Always return valid JSON."

const promptTemplate = `You are an expert HR assistant. Extract the following information from the resume text provided below.
Return the output strictly as a JSON object with the following keys:
- name (string)
- email (string)
- phone (string)
- skills (array of strings)
- experience (array of objects with role, company, duration)
- education (array of objects with degree, school, year)
- summary (string, brief professional summary)

Resume Text:
%s

Ensure the response is valid JSON only, without any markdown formatting or explanation.`

// Extractor parses resumes with a chat model.
type Extractor struct {
	chat llm.ChatClient
}

func NewExtractor(chat llm.ChatClient) *Extractor {
	return &Extractor{chat: chat}
}

// Extract sends the resume text through the chat model in JSON mode at a low
// temperature and decodes the structured result.
func (e *Extractor) Extract(ctx context.Context, resumeText string) (*Resume, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}

	completion, err := e.chat.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(promptTemplate, resumeText)},
	}, llm.ChatOptions{
		JSONMode:    true,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, err
	}

	// Some models wrap JSON output in markdown fences despite instructions.
	content := strings.ReplaceAll(completion.Content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	var parsed Resume
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse structured resume data: %w", err)
	}
	return &parsed, nil
}
