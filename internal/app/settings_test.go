package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hostel_pms/internal/app"
	"hostel_pms/internal/domain"
	"hostel_pms/internal/storage/memory"
)

func TestSaveFacilitiesKeepsOtherSections(t *testing.T) {
	st := memory.NewSeeded()
	bo := app.NewBackOffice(st)
	ctx := context.Background()

	facilities := json.RawMessage(`[{"icon":"wifi","title":"Fast Wi-Fi"}]`)
	if _, err := bo.SaveFacilities(ctx, facilities); err != nil {
		t.Fatalf("save: %v", err)
	}
	var site map[string]json.RawMessage
	if err := json.Unmarshal(st.Snapshot().SiteContent, &site); err != nil {
		t.Fatalf("site content: %v", err)
	}
	if string(site["facilities"]) != string(facilities) {
		t.Fatalf("facilities = %s", site["facilities"])
	}
	if _, ok := site["hero"]; !ok {
		t.Fatalf("hero section dropped")
	}
	if _, err := bo.SaveFacilities(ctx, json.RawMessage(`{"icon":"wifi"}`)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveStaffDocument(t *testing.T) {
	st := memory.NewSeeded()
	bo := app.NewBackOffice(st)
	ctx := context.Background()

	if _, err := bo.SaveStaffDocument(ctx, domain.SettingOnboardingPlans, "S02", json.RawMessage(`{"steps":["Tour"]}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := bo.SaveStaffDocument(ctx, domain.SettingOnboardingPlans, "S03", json.RawMessage(`{"steps":[]}`)); err != nil {
		t.Fatalf("save second: %v", err)
	}
	var plans map[string]json.RawMessage
	if err := json.Unmarshal(st.Snapshot().OnboardingPlans, &plans); err != nil || len(plans) != 2 {
		t.Fatalf("plans: %s (%v)", st.Snapshot().OnboardingPlans, err)
	}

	if _, err := bo.SaveStaffDocument(ctx, domain.SettingPerformanceReviews, "S404", json.RawMessage(`{}`)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := bo.SaveStaffDocument(ctx, domain.SettingThemeSettings, "S02", json.RawMessage(`{}`)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveSettingAndProperty(t *testing.T) {
	st := memory.NewSeeded()
	bo := app.NewBackOffice(st)
	ctx := context.Background()

	tips := json.RawMessage(`[{"name":"Mirante","category":"View"}]`)
	if _, err := bo.SaveSetting(ctx, domain.SettingLocalGuideTips, tips); err != nil {
		t.Fatalf("save tips: %v", err)
	}
	if string(st.Snapshot().LocalGuideTips) != string(tips) {
		t.Fatalf("tips = %s", st.Snapshot().LocalGuideTips)
	}
	if _, err := bo.SaveSetting(ctx, "colors", tips); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	p, err := bo.UpdateProperty(ctx, "P01", domain.PropertyInfo{ID: "P99", Name: "Forest Beach Hostel", Rules: []string{"No smoking"}})
	if err != nil || p.ID != "P01" || p.Name != "Forest Beach Hostel" {
		t.Fatalf("update property: %+v (%v)", p, err)
	}
	if _, err := bo.UpdateProperty(ctx, "P01", domain.PropertyInfo{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMarketingCalendar(t *testing.T) {
	st := memory.NewSeeded()
	bo := app.NewBackOffice(st)
	ctx := context.Background()

	post, err := bo.SchedulePost(ctx, domain.ScheduledPost{Platform: "Instagram", Content: "Sunset session", ScheduledAt: "2026-03-01T18:00:00Z"})
	if err != nil || post.Status != domain.PostScheduled || len(post.Log) != 1 {
		t.Fatalf("schedule: %+v (%v)", post, err)
	}
	if _, err := bo.SchedulePost(ctx, domain.ScheduledPost{Platform: "Instagram", Content: "x", ScheduledAt: "tomorrow"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if draft, err := bo.SchedulePost(ctx, domain.ScheduledPost{Platform: "Facebook", Content: "idea", Status: domain.PostDraft}); err != nil || draft.Status != domain.PostDraft {
		t.Fatalf("draft: %+v (%v)", draft, err)
	}
	if err := bo.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	a, err := bo.AddMediaAsset(ctx, domain.MediaAsset{Type: "image", URL: "https://cdn.example/a.jpg", Prompt: "beach"})
	if err != nil || a.ID == "" || a.CreatedAt == "" {
		t.Fatalf("media: %+v (%v)", a, err)
	}
	if _, err := bo.AddMediaAsset(ctx, domain.MediaAsset{Type: "gif", URL: "x"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := bo.DeleteMediaAsset(ctx, a.ID); err != nil || len(st.Media().List(ctx)) != 0 {
		t.Fatalf("delete media: %v", err)
	}
}
