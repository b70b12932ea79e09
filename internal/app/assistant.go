package app

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hostel_pms/internal/adapters/observability"
	"hostel_pms/internal/domain"
)

const (
	conciergeOfflineReply = "Sorry, my brain is offline (API key not configured)."
	conciergeContextTurns = 10
)

// Assistant runs every AI-backed operation through the gateway and keeps an
// audit trail of the calls. The gateway is never called under the store lock.
type Assistant struct {
	store   domain.StateStore
	gateway domain.Gateway
	audit   domain.InvocationLog
	now     func() time.Time
}

func NewAssistant(st domain.StateStore, gw domain.Gateway, audit domain.InvocationLog) *Assistant {
	return &Assistant{store: st, gateway: gw, audit: audit, now: time.Now}
}

func (a *Assistant) Mode() string { return a.gateway.Mode() }

// Run executes the catalog operation name with the request body args.
func (a *Assistant) Run(ctx context.Context, name string, args Args) (json.RawMessage, error) {
	op, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("ai operation %q: %w", name, domain.ErrNotFound)
	}
	if args == nil {
		args = Args{}
	}
	in := opInput{ctx: ctx, args: args, store: a.store}
	p := domain.Prompt{Operation: name, Mock: op.mock(in)}

	if op.mockOnly {
		start := a.now()
		out, err := json.Marshal(p.Mock)
		a.record(ctx, name, "mock", start, err)
		return out, err
	}
	if a.gateway.Mode() != "mock" {
		p.Text = op.prompt(in)
		if op.image != nil {
			p.Image = op.image(args)
		}
	}

	start := a.now()
	out, err := a.gateway.GenerateJSON(ctx, p)
	a.record(ctx, name, a.gateway.Mode(), start, err)
	return out, err
}

// GenerateImage returns the generated picture, or nil when none was produced.
func (a *Assistant) GenerateImage(ctx context.Context, prompt, aspectRatio string) (*domain.GeneratedImage, error) {
	if strings.TrimSpace(prompt) == "" && a.gateway.Mode() != "mock" {
		return nil, invalidf("prompt is required")
	}
	start := a.now()
	img, err := a.gateway.GenerateImage(ctx, domain.Prompt{Operation: "generate-image", Text: prompt}, aspectRatio)
	a.record(ctx, "generate-image", a.gateway.Mode(), start, err)
	return img, err
}

// Concierge appends the guest's message to their history, asks the gateway
// for a reply and appends that too. A failed gateway call leaves the user
// message in place without a reply.
func (a *Assistant) Concierge(ctx context.Context, guestID, message string) (domain.ConciergeMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ConciergeMessage{}, invalidf("message is required")
	}
	userMsg := domain.ConciergeMessage{ID: newID("msg_"), Sender: domain.SenderUser, Text: message, Timestamp: a.stamp()}
	g, err := a.appendConcierge(ctx, guestID, userMsg)
	if err != nil {
		return domain.ConciergeMessage{}, err
	}

	p := domain.Prompt{Operation: "concierge", Mock: conciergeOfflineReply}
	if a.gateway.Mode() != "mock" {
		p.Text = conciergePrompt(g, message)
	}
	start := a.now()
	text, err := a.gateway.GenerateText(ctx, p)
	a.record(ctx, "concierge", a.gateway.Mode(), start, err)
	if err != nil {
		return domain.ConciergeMessage{}, err
	}

	reply := domain.ConciergeMessage{ID: newID("msg_"), Sender: domain.SenderAgent, Text: strings.TrimSpace(text), Timestamp: a.stamp()}
	if _, err := a.appendConcierge(ctx, guestID, reply); err != nil {
		return domain.ConciergeMessage{}, err
	}
	return reply, nil
}

func (a *Assistant) appendConcierge(ctx context.Context, guestID string, m domain.ConciergeMessage) (domain.Guest, error) {
	return a.store.Guests().Update(ctx, guestID, func(g *domain.Guest) error {
		g.ConciergeChatHistory = append(slices.Clone(g.ConciergeChatHistory), m)
		return nil
	})
}

func conciergePrompt(g domain.Guest, message string) string {
	var sb strings.Builder
	sb.WriteString("You are the friendly concierge of a hostel. Answer briefly in the guest's language.\n")
	fmt.Fprintf(&sb, "Guest: %s.", g.FullName)
	if len(g.Interests) > 0 {
		fmt.Fprintf(&sb, " Interests: %s.", strings.Join(g.Interests, ", "))
	}
	sb.WriteString("\n")
	hist := g.ConciergeChatHistory
	if len(hist) > 0 {
		// the last entry is the message being answered
		hist = hist[:len(hist)-1]
	}
	if len(hist) > conciergeContextTurns {
		hist = hist[len(hist)-conciergeContextTurns:]
	}
	for _, m := range hist {
		fmt.Fprintf(&sb, "%s: %s\n", m.Sender, m.Text)
	}
	fmt.Fprintf(&sb, "The guest said: %q. Reply as the concierge.", message)
	return sb.String()
}

// Synapse acknowledges an operator command in the shared command log.
// Commands are recorded but not executed.
func (a *Assistant) Synapse(ctx context.Context, command, userID, userName string) (domain.SynapseMessage, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return domain.SynapseMessage{}, invalidf("command is required")
	}
	start := a.now()
	msg := domain.SynapseMessage{
		ID:        newID("syn_"),
		Sender:    domain.SenderAgent,
		Text:      fmt.Sprintf("Command %q received, but real execution is not implemented.", command),
		Timestamp: a.stamp(),
	}
	a.store.AppendSynapse(ctx, msg)
	log.Info().Str("user", userID).Str("name", userName).Str("command", command).Msg("synapse command acknowledged")
	a.record(ctx, "synapse", a.gateway.Mode(), start, nil)
	return msg, nil
}

// Invocations returns the most recent audited gateway calls.
func (a *Assistant) Invocations(ctx context.Context, limit int) ([]domain.Invocation, error) {
	return a.audit.Recent(ctx, limit)
}

func (a *Assistant) record(ctx context.Context, op, mode string, start time.Time, err error) {
	observability.ObserveAI(op, mode, err)
	inv := domain.Invocation{
		Operation:  op,
		Mode:       mode,
		OK:         err == nil,
		DurationMS: a.now().Sub(start).Milliseconds(),
		At:         start.UTC(),
	}
	if err != nil {
		inv.Error = err.Error()
		log.Error().Err(err).Str("op", op).Str("mode", mode).Msg("ai invocation failed")
	}
	if rerr := a.audit.Record(ctx, inv); rerr != nil {
		log.Warn().Err(rerr).Str("op", op).Msg("ai invocation not audited")
	}
}

func (a *Assistant) stamp() string { return a.now().UTC().Format(isoMillis) }
