package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/providers"
	"github.com/farishtaa/carefinder/pkg/config"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client implements the triage model provider against the Gemini API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ providers.TriageModelProvider = (*Client)(nil)

// NewClient creates a new Gemini client.
func NewClient(cfg *config.GeminiConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}, nil
}

// NewClientWithOptions overrides the base URL and HTTP client, used in tests.
func NewClientWithOptions(cfg *config.GeminiConfig, baseURL string, httpClient *http.Client) (*Client, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(baseURL) != "" {
		client.baseURL = baseURL
	}
	if httpClient != nil {
		client.httpClient = httpClient
	}
	return client, nil
}

// GenerateReply produces the assistant turn for a triage conversation.
func (c *Client) GenerateReply(ctx context.Context, language, prompt string, history []*entities.TriageMessage, patient *providers.TriagePatient) (string, error) {
	payload := generateContentRequest{
		SystemInstruction: &content{
			Parts: []part{{Text: systemPrompt(language, patient)}},
		},
	}

	for _, msg := range history {
		role := "user"
		if msg.Role == entities.TriageRoleAssistant {
			role = "model"
		}
		payload.Contents = append(payload.Contents, content{
			Role:  role,
			Parts: []part{{Text: msg.Content}},
		})
	}
	payload.Contents = append(payload.Contents, content{
		Role:  "user",
		Parts: []part{{Text: prompt}},
	})

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode gemini request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini request returned status %d", resp.StatusCode)
	}

	var decoded generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini response contained no candidates")
	}

	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}

func systemPrompt(language string, patient *providers.TriagePatient) string {
	var b strings.Builder
	b.WriteString("You are a careful medical triage assistant. ")
	b.WriteString("Ask clarifying questions about the patient's symptoms, suggest which specialist to consult, ")
	b.WriteString("and always recommend seeing a doctor for anything serious. Never provide a diagnosis or prescription.")
	if patient != nil {
		if patient.Name != "" {
			fmt.Fprintf(&b, " The patient's name is %s.", patient.Name)
		}
		if patient.Age > 0 {
			fmt.Fprintf(&b, " They are %d years old.", patient.Age)
		}
		if patient.Gender != "" {
			fmt.Fprintf(&b, " Gender: %s.", patient.Gender)
		}
	}
	if language != "" {
		fmt.Fprintf(&b, " Respond in %s.", language)
	}
	return b.String()
}

type generateContentRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}
