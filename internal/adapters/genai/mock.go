package genai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"hostel_pms/internal/domain"
)

// Mock is the offline Gateway: each call answers with the fixed value the
// call site put in Prompt.Mock. It never reaches the network.
type Mock struct{}

func (Mock) Mode() string { return "mock" }

func (Mock) GenerateJSON(ctx context.Context, p domain.Prompt) (json.RawMessage, error) {
	log.Debug().Str("op", p.Operation).Msg("using mocked AI response")
	b, err := json.Marshal(p.Mock)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrGateway, p.Operation, err)
	}
	return b, nil
}

func (Mock) GenerateText(ctx context.Context, p domain.Prompt) (string, error) {
	log.Debug().Str("op", p.Operation).Msg("using mocked AI response")
	s, _ := p.Mock.(string)
	return s, nil
}

func (Mock) GenerateImage(ctx context.Context, p domain.Prompt, aspectRatio string) (*domain.GeneratedImage, error) {
	return nil, nil
}

// Select picks the strategy once at startup: live when a key is configured.
func Select(base, key string, o Options) (domain.Gateway, error) {
	if key == "" {
		return Mock{}, nil
	}
	return New(base, key, o)
}
