package app_test

import (
	"context"
	"encoding/json"
	"sync"

	"hostel_pms/internal/domain"
)

// ---- fakes ----

type fakeGateway struct {
	mu      sync.Mutex
	json    json.RawMessage
	text    string
	err     error
	prompts []domain.Prompt
}

func (f *fakeGateway) Mode() string { return "live" }

func (f *fakeGateway) GenerateJSON(ctx context.Context, p domain.Prompt) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p)
	return f.json, f.err
}

func (f *fakeGateway) GenerateText(ctx context.Context, p domain.Prompt) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p)
	return f.text, f.err
}

func (f *fakeGateway) GenerateImage(ctx context.Context, p domain.Prompt, aspectRatio string) (*domain.GeneratedImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.GeneratedImage{Base64Image: "aW1n"}, nil
}

type fakeAudit struct {
	mu   sync.Mutex
	invs []domain.Invocation
}

func (f *fakeAudit) Record(ctx context.Context, inv domain.Invocation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invs = append(f.invs, inv)
	return nil
}

func (f *fakeAudit) Recent(ctx context.Context, limit int) ([]domain.Invocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]domain.Invocation(nil), f.invs...)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }
