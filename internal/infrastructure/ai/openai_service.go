package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/cantina-engine/internal/application/ports"
)

var _ ports.LLMService = (*OpenAIService)(nil)

const openAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// OpenAIService adaptador que implementa LLMService usando la API REST de
// OpenAI (Chat Completions). Mismo contrato que el adaptador de Anthropic;
// el proveedor se elige por configuración.
type OpenAIService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIService construye el adaptador. model suele ser "gpt-4o-mini".
func NewOpenAIService(apiKey, model string) *OpenAIService {
	return &OpenAIService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *openAIFormat   `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIFormat struct {
	Type string `json:"type"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// SuggestColumnMapping envía cabeceras y filas de muestra al modelo y devuelve
// el mapeo campo canónico -> columna propuesto.
func (s *OpenAIService) SuggestColumnMapping(
	ctx context.Context,
	headers []string,
	sampleRows []map[string]string,
) (map[string]string, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: OPENAI_API_KEY no configurado")
	}

	payload := openAIRequest{
		Model: s.model,
		Messages: []openAIMessage{
			{Role: "system", Content: mappingSystemPrompt},
			{Role: "user", Content: buildMappingPrompt(headers, sampleRows)},
		},
		Temperature:    0,
		ResponseFormat: &openAIFormat{Type: "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatCompletionsURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp openAIResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: OpenAI error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: OpenAI HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var openResp openAIResponse
	if err := json.Unmarshal(rawBody, &openResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta OpenAI: %w", err)
	}
	if len(openResp.Choices) == 0 {
		return nil, fmt.Errorf("AI: OpenAI devolvió respuesta vacía")
	}

	return parseMappingJSON(openResp.Choices[0].Message.Content)
}
