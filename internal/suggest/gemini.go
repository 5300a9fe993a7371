// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"
	"time"
)

// suggestionPromptTmpl is the prompt sent to the Gemini API for each
// expansion. It asks for 4-5 concise, surprising concepts relevant to
// both the current concept and the whole exploration path, returned as a
// JSON object with a single "concepts" array.
var suggestionPromptTmpl = template.Must(template.New("suggestion").Parse(`You are a creative agent that generates unexpected conceptual connections.
Your goal is to build a web of ideas spanning diverse intellectual domains.

The exploration path so far is: {{.Path}}
The current concept to explore is: "{{.Concept}}"

Generate 4-5 fascinating and unexpected concepts related to the current concept and the overall path.

Guidelines:
1.  **Intellectual Diversity**: Connect across science, art, philosophy, technology, and culture.
2.  **Concise**: Each concept should be 1-5 words.
3.  **Surprising**: Avoid obvious associations. Find thought-provoking links.
4.  **Context-Aware**: The new concepts must be relevant to BOTH the immediate concept ("{{.Concept}}") and the entire path.
5.  **Avoid Repeats**: Do not suggest any concepts already in the path.

Return your response as a JSON object with a single key "concepts" which contains a list of strings.
Example: {"concepts": ["Quantum Foam", "Aesthetic Experience", "Cognitive Scaffolding", "Emergent Systems"]}
`))

// geminiBaseURL is the Generative Language API base. Package-level var
// for test substitution.
var geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds one suggestion call when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// GeminiBackend calls the Google Generative Language API with a JSON
// response MIME type so the reply parses directly into a concept list.
type GeminiBackend struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Client  *http.Client
}

// geminiRequest is the request body for the generateContent endpoint.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// conceptList is the JSON object the prompt instructs the model to emit.
type conceptList struct {
	Concepts []string `json:"concepts"`
}

// Suggest makes a single generateContent call and parses the concept
// list out of the model's JSON reply.
func (g *GeminiBackend) Suggest(ctx context.Context, concept string, path []string) ([]string, error) {
	prompt, err := renderPrompt(concept, path)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMIMEType: "application/json",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	model := g.Model
	if model == "" {
		model = DefaultModel
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return nil, fmt.Errorf("decoding Gemini response: %w", err)
	}

	for _, cand := range gResp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text == "" {
				continue
			}
			var list conceptList
			if err := json.Unmarshal([]byte(part.Text), &list); err != nil {
				return nil, fmt.Errorf("parsing concept list JSON: %w", err)
			}
			return list.Concepts, nil
		}
	}

	return nil, fmt.Errorf("Gemini API returned no text content")
}

// renderPrompt executes the suggestion template for one concept and its
// path from the root.
func renderPrompt(concept string, path []string) (string, error) {
	full := append([]string(nil), path...)
	if len(full) == 0 || full[len(full)-1] != concept {
		full = append(full, concept)
	}

	var buf bytes.Buffer
	data := struct {
		Path    string
		Concept string
	}{
		Path:    strings.Join(full, " → "),
		Concept: concept,
	}
	if err := suggestionPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
