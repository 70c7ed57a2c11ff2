package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/poupanca/poupanca/internal/config"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// FallbackAdvice is returned whenever the advice service cannot be
// reached or answers with something unusable.
const FallbackAdvice = "Mantenha o foco nos seus objetivos financeiros! Cada real guardado é um passo rumo à sua liberdade."

// ErrGenerationFailed signals that no usable schedule could be
// generated. Callers must not mutate state when they receive it.
var ErrGenerationFailed = errors.New("schedule generation failed")

type AdviceRequest struct {
	CurrentTotal decimal.Decimal
	Target       decimal.Decimal
	IsCouple     bool
	IsPremium    bool
}

type Client interface {
	// GetAdvice is best-effort: any failure degrades to FallbackAdvice,
	// never to an error.
	GetAdvice(ctx context.Context, req AdviceRequest) string
	// GenerateSchedule requests a progressive schedule of exactly
	// `months` values summing to the target. Any failure, including a
	// wrong-length response, is ErrGenerationFailed.
	GenerateSchedule(ctx context.Context, target decimal.Decimal, months int) ([]decimal.Decimal, error)
}

type GeminiClient struct {
	cfg    config.Advice
	client *http.Client
}

func NewGeminiClient(cfg config.Advice) *GeminiClient {
	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) GetAdvice(ctx context.Context, req AdviceRequest) string {
	model := c.cfg.Model
	temperature := 0.7
	premiumContext := "Dê 3 dicas curtas e motivadoras de economia."
	if req.IsPremium {
		model = c.cfg.PremiumModel
		temperature = 0.4
		premiumContext = "Como usuário PREMIUM, forneça uma análise técnica detalhada com estratégias de investimento de baixo risco para o valor já acumulado."
	}

	mode := "É um plano individual."
	if req.IsCouple {
		mode = "É um plano para casal."
	}
	prompt := fmt.Sprintf(
		"O usuário está economizando dinheiro. Progresso atual: R$ %s de R$ %s. %s %s Responda em português.",
		req.CurrentTotal, req.Target, mode, premiumContext,
	)

	text, err := c.generateContent(ctx, model, prompt, &generationConfig{Temperature: temperature})
	if err != nil || text == "" {
		log.Warnf("advice service unavailable, using fallback: %v", err)
		return FallbackAdvice
	}
	return text
}

func (c *GeminiClient) GenerateSchedule(ctx context.Context, target decimal.Decimal, months int) ([]decimal.Decimal, error) {
	prompt := fmt.Sprintf(
		"Crie um plano de economia progressiva para atingir R$ %s em %d meses. "+
			"Os valores mensais devem ser crescentes para começar fácil e terminar com desafio. "+
			"Responda apenas um JSON com a propriedade \"values\" contendo exatamente %d números.",
		target, months, months,
	)

	text, err := c.generateContent(ctx, c.cfg.Model, prompt, &generationConfig{ResponseMimeType: "application/json"})
	if err != nil {
		log.Warnf("schedule generation failed: %v", err)
		return nil, ErrGenerationFailed
	}

	var payload struct {
		Values []decimal.Decimal `json:"values"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		log.Warnf("schedule generation returned malformed JSON: %v", err)
		return nil, ErrGenerationFailed
	}
	if len(payload.Values) != months {
		log.Warnf("schedule generation returned %d values, expected %d", len(payload.Values), months)
		return nil, ErrGenerationFailed
	}
	return payload.Values, nil
}

func (c *GeminiClient) generateContent(ctx context.Context, model, prompt string, cfg *generationConfig) (string, error) {
	body, err := json.Marshal(generateContentRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", fmt.Errorf("could not serialize request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, model, c.cfg.ApiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice service returned status %d", resp.StatusCode)
	}

	var parsed generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("could not parse response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("advice service returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
