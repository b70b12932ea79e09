package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"hostel_pms/internal/domain"
)

const jsonOnly = "Answer only with a JSON object, no prose and no markdown."

// opInput is what a catalog entry sees when building its prompt.
type opInput struct {
	ctx   context.Context
	args  Args
	store domain.StateStore
}

// operation is one structured AI call. mock is the fixed answer returned in
// offline mode; mockOnly operations never reach the provider.
type operation struct {
	prompt   func(in opInput) string
	mock     func(in opInput) any
	image    func(a Args) *domain.InlineImage
	mockOnly bool
}

func fixed(v any) func(opInput) any { return func(opInput) any { return v } }

func obj() map[string]any { return map[string]any{} }

func list() []any { return []any{} }

var catalog = map[string]operation{
	"daily-briefing": {
		prompt: func(in opInput) string {
			return "Write the daily briefing for a hostel manager with a summary, attention points and proactive suggestions. " +
				"Shape: {summary:{title,points[]}, attentionPoints:{title,points[]}, proactiveSuggestions:{title,points[]}}. " +
				"Today's data: " + digest(in) + ". " + jsonOnly
		},
		mock: fixed(map[string]any{
			"summary":              map[string]any{"title": "Simulated briefing", "points": []any{"Backend online, API key missing."}},
			"attentionPoints":      map[string]any{"title": "Attention", "points": list()},
			"proactiveSuggestions": map[string]any{"title": "Suggestions", "points": list()},
		}),
	},
	"business-diagnosis": {
		prompt: func(in opInput) string {
			return "Diagnose this hostel business across rooms, bookings, POS, staff and marketing. " +
				"Shape: {keyInsights[], crossModuleCorrelations[], warnings[]}. Data: " + digest(in) + ". " + jsonOnly
		},
		mock: fixed(map[string]any{"keyInsights": list(), "crossModuleCorrelations": list(), "warnings": list()}),
	},
	"marketing-mix": {
		prompt: func(in opInput) string {
			budget, _ := in.args.Float("budget")
			return fmt.Sprintf("Plan a marketing mix for a hostel. Objective: %q. Budget: %s. Period: %q. "+
				"Shape: {strategicVision, budgetSplit[], phases[], keyMetrics[], creativeGuidelines}. %s",
				in.args.Str("objective"), money(budget), in.args.Str("period"), jsonOnly)
		},
		mock: fixed(map[string]any{"strategicVision": "Mock vision", "budgetSplit": list(), "phases": list(), "keyMetrics": list(), "creativeGuidelines": ""}),
	},
	"generate-video": {
		mockOnly: true,
		mock:     fixed(map[string]any{"videoUrl": "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"}),
	},
	"social-post": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Write a %s post for a hostel about %q. Context: %s. Shape: {postText, imageSuggestion}. %s",
				in.args.Str("platform"), in.args.Str("topic"), in.args.Str("context"), jsonOnly)
		},
		mock: func(in opInput) any {
			topic := in.args.Str("topic")
			return map[string]any{
				"postText":        fmt.Sprintf("Amazing post about %s on %s!", topic, in.args.Str("platform")),
				"imageSuggestion": fmt.Sprintf("A vibrant photo of %s.", topic),
			}
		},
	},
	"ad-campaign": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Create a %s ad campaign for a hostel with the goal %q. Context: %s. "+
				"Shape: {campaignName, adCopy:{headlines[],descriptions[]}, targeting:{keywords[]}, creativeSuggestion, budget:{dailyAmount,justification}}. %s",
				in.args.Str("platform"), in.args.Str("goal"), in.args.Str("context"), jsonOnly)
		},
		mock: func(in opInput) any {
			return map[string]any{
				"campaignName":       "Campaign for " + in.args.Str("goal"),
				"adCopy":             map[string]any{"headlines": []any{"AI generated headline"}, "descriptions": []any{"AI generated description."}},
				"targeting":          map[string]any{"keywords": []any{"hostel", "travel"}},
				"creativeSuggestion": "Use a picture of happy people on the beach.",
				"budget":             map[string]any{"dailyAmount": 50, "justification": "Recommended starting budget."},
			}
		},
	},
	"deep-optimization": {
		prompt: func(in opInput) string {
			return "Deeply optimize this ad campaign: copy, audience discovery and automated rules. " +
				"Shape: {copyOptimization:{}, audienceDiscovery:{}, automatedRules[]}. Campaign: " + campaignJSON(in) + ". " + jsonOnly
		},
		mock: fixed(map[string]any{"copyOptimization": obj(), "audienceDiscovery": obj(), "automatedRules": list()}),
	},
	"analyze-creative": {
		prompt: func(in opInput) string {
			return "Review the attached ad creative. Shape: {strengths[], weaknesses[], suggestions[]}. " + jsonOnly
		},
		image: func(a Args) *domain.InlineImage {
			data := a.Str("imageBase64")
			if data == "" {
				return nil
			}
			mime := a.Str("mimeType")
			if mime == "" {
				mime = "image/png"
			}
			return &domain.InlineImage{MIMEType: mime, Base64: data}
		},
		mock: fixed(map[string]any{"strengths": []any{"Good lighting"}, "weaknesses": []any{"Small text"}, "suggestions": []any{"Make the logo bigger"}}),
	},
	"spy-competitor": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Summarize the public positioning, pricing and marketing of the hostel competitor %q. %s",
				in.args.Str("competitorName", "competitor"), jsonOnly)
		},
		mock: fixed(obj()),
	},
	"campaign-anomalies": {
		prompt: func(in opInput) string {
			return "Detect anomalies in these ad campaigns' KPIs. Shape: {anomalies[]}. Campaigns: " + campaignsJSON(in) + ". " + jsonOnly
		},
		mock: fixed(map[string]any{"anomalies": list()}),
	},
	"campaigns-from-phase": {
		prompt: func(in opInput) string {
			budget, _ := in.args.Float("budget")
			return fmt.Sprintf("Turn this marketing plan phase into ad campaigns. Budget: %s. Phase: %s. Plan: %s. Shape: {campaigns[]}. %s",
				money(budget), in.args.JSON("phase"), in.args.JSON("plan"), jsonOnly)
		},
		mock: fixed(map[string]any{"campaigns": list()}),
	},
	"campaign-performance": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Analyze the performance of this ad set within its campaign. "+
				"Shape: {summary:{performanceLevel,text}, insights[], recommendations[]}. Ad set: %s. Campaign: %s. %s",
				in.args.JSON("adSet"), in.args.JSON("campaign"), jsonOnly)
		},
		mock: fixed(map[string]any{"summary": map[string]any{"performanceLevel": "Good", "text": "Ok"}, "insights": list(), "recommendations": list()}),
	},
	"market-seo": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Give a market and SEO analysis for the website %q of a hostel. %s", in.args.Str("domain"), jsonOnly)
		},
		mock: fixed(obj()),
	},
	"competitor-ads": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Describe the likely ad strategy of the competitor %q. %s", in.args.Str("competitor", "competitorName"), jsonOnly)
		},
		mock: fixed(obj()),
	},
	"creative-asset": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Draft a %s creative brief for a hostel about %q. %s", in.args.Str("assetType"), in.args.Str("topic"), jsonOnly)
		},
		mock: fixed(obj()),
	},
	"growth-hacks": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Suggest growth hacks for a hostel. Question: %q. %s", in.args.Str("question"), jsonOnly)
		},
		mock: fixed(obj()),
	},
	"post-from-review": {
		prompt: func(in opInput) string {
			comment, name := reviewArgs(in)
			return fmt.Sprintf("Turn this guest review by %s into a thank-you social post: %q. Shape: {postText, imageSuggestion}. %s",
				name, comment, jsonOnly)
		},
		mock: func(in opInput) any {
			_, name := reviewArgs(in)
			return map[string]any{"postText": fmt.Sprintf("Thank you, %s!", name), "imageSuggestion": "Photo of the hostel"}
		},
	},
	"work-schedule": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Build next week's work schedule. Constraints: %q. Staff: %s. Shape: {schedule[]}. %s",
				in.args.Str("constraints"), staffJSON(in), jsonOnly)
		},
		mock: fixed(map[string]any{"schedule": list()}),
	},
	"onboarding-plan": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Write an onboarding plan for %s joining as %s. Existing team: %s. Shape: {plan[]}. %s",
				in.args.Str("employeeName"), in.args.Str("employeeRole"), staffJSON(in), jsonOnly)
		},
		mock: fixed(map[string]any{"plan": list()}),
	},
	"team-performance": {
		prompt: func(in opInput) string {
			focus := "the whole team"
			if id := in.args.Str("targetStaffId"); id != "" {
				focus = "staff member " + id
			}
			return fmt.Sprintf("Analyze the performance of %s from their tasks. Shape: {summary, strengths[], suggestions[]}. Staff: %s. Tasks: %s. %s",
				focus, staffJSON(in), tasksJSON(in), jsonOnly)
		},
		mock: fixed(map[string]any{"summary": "Everyone is great", "strengths": list(), "suggestions": list()}),
	},
	"breakeven": {
		prompt: func(in opInput) string {
			fixedCosts, _ := in.args.Float("totalFixedCosts")
			rev, _ := in.args.Float("avgRevenuePerGuest")
			variable, _ := in.args.Float("variableCostPerGuest")
			return fmt.Sprintf("Compute the breakeven point of a hostel with %d beds. Fixed costs: %s. Revenue per guest night: %s. Variable cost per guest night: %s. "+
				"Shape: {breakevenOccupancyRate, monthlyRevenueTarget, analysis}. %s",
				bedCount(in), money(fixedCosts), money(rev), money(variable), jsonOnly)
		},
		mock: fixed(map[string]any{"breakevenOccupancyRate": 42, "monthlyRevenueTarget": 10000, "analysis": "Mocked analysis."}),
	},
	"financial-scenario": {
		prompt: func(in opInput) string {
			fixedCosts, _ := in.args.Float("totalFixedCosts")
			rev, _ := in.args.Float("avgRevenuePerGuest")
			variable, _ := in.args.Float("variableCostPerGuest")
			return fmt.Sprintf("Simulate the scenario %q for a hostel. Fixed costs: %s. Revenue per guest: %s. Variable cost per guest: %s. "+
				"Shape: {scenario, impactAnalysis:{profitChange,revenueChange}, recommendations[], potentialRisks[]}. %s",
				in.args.Str("scenario"), money(fixedCosts), money(rev), money(variable), jsonOnly)
		},
		mock: func(in opInput) any {
			return map[string]any{
				"scenario":        in.args.Str("scenario"),
				"impactAnalysis":  map[string]any{"profitChange": "increase", "revenueChange": "increase"},
				"recommendations": list(),
				"potentialRisks":  list(),
			}
		},
	},
	"profitability-plan": {
		prompt: func(in opInput) string {
			return "Suggest pricing changes and package deals to raise profitability. Shape: {pricingSuggestions[], packageDeals[]}. Data: " +
				digest(in) + ". " + jsonOnly
		},
		mock: fixed(map[string]any{"pricingSuggestions": list(), "packageDeals": list()}),
	},
	"simulate-expansion": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Simulate this expansion idea for the hostel: %q. Current data: %s. "+
				"Shape: {simulationSummary, estimatedCost, projectedRevenueIncrease, estimatedROI, risksAndConsiderations[]}. %s",
				in.args.Str("query"), digest(in), jsonOnly)
		},
		mock: fixed(map[string]any{
			"simulationSummary":        "Looks like a good idea.",
			"estimatedCost":            "R$ 50,000",
			"projectedRevenueIncrease": "15%",
			"estimatedROI":             "25%",
			"risksAndConsiderations":   list(),
		}),
	},
	"management-report": {
		prompt: func(in opInput) string {
			return "Write the monthly management report for the hostel owner covering occupancy, revenue, costs, team and marketing. Data: " +
				digest(in) + ". " + jsonOnly
		},
		mock: fixed(nil),
	},
	"personas": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Create guest personas for this audience: %q. Shape: {personas[]}. %s", in.args.Str("audienceDescription"), jsonOnly)
		},
		mock: fixed(map[string]any{"personas": list()}),
	},
	"persona-from-audience": {
		prompt: func(in opInput) string {
			return "Describe one guest persona that represents this custom audience. Audience: " + audienceJSON(in) + ". " + jsonOnly
		},
		mock: fixed(obj()),
	},
	"daily-itinerary": {
		prompt: func(in opInput) string {
			return fmt.Sprintf("Plan a day for a hostel guest interested in %s. Today's events: %s. Shape: {morning:{}, afternoon:{}, night:{}}. %s",
				joinNonEmpty(", ", in.args.Strings("guestInterests")...), in.args.JSON("todaysEvents"), jsonOnly)
		},
		mock: fixed(map[string]any{"morning": obj(), "afternoon": obj(), "night": obj()}),
	},
}

// Operations lists the catalog names in a stable order.
func Operations() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ---- prompt context ----

func digest(in opInput) string {
	st := in.store.Snapshot()
	rooms := map[domain.RoomStatus]int{}
	for _, r := range st.Rooms {
		rooms[r.Status]++
	}
	bookings := map[domain.BookingStatus]int{}
	balance := 0.0
	for _, b := range st.Bookings {
		bookings[b.Status]++
		balance += b.Balance
	}
	openTasks := 0
	for _, t := range st.StaffTasks {
		if t.Status != domain.TaskDone {
			openTasks++
		}
	}
	var lowStock []string
	for _, p := range st.Products {
		if p.LowStock() {
			lowStock = append(lowStock, p.Name)
		}
	}
	sales, expenses := 0.0, 0.0
	for _, t := range st.Transactions {
		sales += t.Total
	}
	for _, e := range st.Expenses {
		expenses += e.Amount
	}
	pending := 0
	for _, r := range st.Reviews {
		if r.Status == domain.ReviewPending {
			pending++
		}
	}
	b, _ := json.Marshal(map[string]any{
		"roomsByStatus":    rooms,
		"bookingsByStatus": bookings,
		"openBalance":      balance,
		"openTasks":        openTasks,
		"lowStock":         lowStock,
		"posSales":         sales,
		"expenses":         expenses,
		"pendingReviews":   pending,
		"guests":           len(st.Guests),
		"staff":            len(st.Staff),
		"campaigns":        len(st.AdCampaigns),
	})
	return string(b)
}

func bedCount(in opInput) int {
	n := 0
	for _, r := range in.store.Rooms().List(in.ctx) {
		n += r.Capacity
	}
	return n
}

func staffJSON(in opInput) string {
	type member struct {
		ID   string           `json:"id"`
		Name string           `json:"name"`
		Role domain.StaffRole `json:"role"`
	}
	var out []member
	for _, s := range in.store.Staff().List(in.ctx) {
		out = append(out, member{ID: s.ID, Name: s.Name, Role: s.Role})
	}
	b, _ := json.Marshal(out)
	return string(b)
}

func tasksJSON(in opInput) string {
	tasks := in.store.Tasks().List(in.ctx)
	if id := in.args.Str("targetStaffId"); id != "" {
		var mine []domain.StaffTask
		for _, t := range tasks {
			if t.AssigneeID == id {
				mine = append(mine, t)
			}
		}
		tasks = mine
	}
	b, _ := json.Marshal(tasks)
	return string(b)
}

func campaignJSON(in opInput) string {
	if id := in.args.Str("campaignId", "campaign.id"); id != "" {
		if c, err := in.store.Campaigns().Get(in.ctx, id); err == nil {
			b, _ := json.Marshal(c)
			return string(b)
		}
	}
	return in.args.JSON("campaign")
}

func campaignsJSON(in opInput) string {
	if _, ok := in.args["campaigns"]; ok {
		return in.args.JSON("campaigns")
	}
	b, _ := json.Marshal(in.store.Campaigns().List(in.ctx))
	return string(b)
}

func audienceJSON(in opInput) string {
	if id := in.args.Str("audienceId", "audience.id"); id != "" {
		if a, err := in.store.Audiences().Get(in.ctx, id); err == nil {
			b, _ := json.Marshal(a)
			return string(b)
		}
	}
	return in.args.JSON("audience")
}

// reviewArgs reads the comment and guest name from the body, falling back to
// the stored review when only reviewId is sent.
func reviewArgs(in opInput) (comment, name string) {
	comment, name = in.args.Str("comment"), in.args.Str("guestName")
	if id := in.args.Str("reviewId"); id != "" && (comment == "" || name == "") {
		if r, err := in.store.Reviews().Get(in.ctx, id); err == nil {
			if comment == "" {
				comment = r.Comment
			}
			if name == "" {
				name = r.GuestName
			}
		}
	}
	if name == "" {
		name = "guest"
	}
	return strings.TrimSpace(comment), name
}
