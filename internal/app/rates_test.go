package app_test

import (
	"context"
	"errors"
	"testing"

	"hostel_pms/internal/app"
	"hostel_pms/internal/domain"
	"hostel_pms/internal/storage/memory"
)

func TestSaveRatePlan(t *testing.T) {
	st := memory.NewSeeded()
	bo := app.NewBackOffice(st)
	ctx := context.Background()

	rp, err := bo.SaveRatePlan(ctx, domain.RatePlan{Name: "Non-refundable", PriceModifier: -10, ModifierType: "percentage", IsDefault: true})
	if err != nil || rp.ID == "" {
		t.Fatalf("insert: %+v (%v)", rp, err)
	}
	old, _ := st.RatePlans().Get(ctx, "RP01")
	if old.IsDefault {
		t.Fatalf("RP01 still default after a new default was saved")
	}

	rp.Description = "Pay now, save 10%"
	rp.IsDefault = false
	if got, err := bo.SaveRatePlan(ctx, rp); err != nil || got.Description != rp.Description || len(st.RatePlans().List(ctx)) != 2 {
		t.Fatalf("update: %+v (%v)", got, err)
	}

	if _, err := bo.SaveRatePlan(ctx, domain.RatePlan{ID: "RP404", Name: "x", ModifierType: "fixed"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := bo.SaveRatePlan(ctx, domain.RatePlan{Name: "x", ModifierType: "double"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteRatePlanKeepsDefault(t *testing.T) {
	st := memory.NewSeeded()
	bo := app.NewBackOffice(st)
	ctx := context.Background()

	if err := bo.DeleteRatePlan(ctx, "RP01"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected default plan to be kept, got %v", err)
	}
	rp, _ := bo.SaveRatePlan(ctx, domain.RatePlan{Name: "Weekly", ModifierType: "fixed"})
	if err := bo.DeleteRatePlan(ctx, rp.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := bo.DeleteRatePlan(ctx, rp.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddOnsAndRestrictions(t *testing.T) {
	st := memory.NewSeeded()
	bo := app.NewBackOffice(st)
	ctx := context.Background()

	a, err := bo.SaveAddOn(ctx, domain.AddOn{Name: "Breakfast", Price: 25})
	if err != nil || a.ID == "" {
		t.Fatalf("add-on: %+v (%v)", a, err)
	}
	if _, err := bo.SaveAddOn(ctx, domain.AddOn{Name: "Refund", Price: -1}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := bo.DeleteAddOn(ctx, a.ID); err != nil || len(st.AddOns().List(ctx)) != 0 {
		t.Fatalf("delete add-on: %v", err)
	}

	br, err := bo.SaveRestriction(ctx, domain.BookingRestriction{Name: "Carnival", Type: domain.RestrictionMinStay, Value: 4, StartDate: "2026-02-13", EndDate: "2026-02-18"})
	if err != nil || br.ID == "" {
		t.Fatalf("restriction: %+v (%v)", br, err)
	}
	bad := []domain.BookingRestriction{
		{Type: "maxStay", Value: 1, StartDate: "2026-01-01", EndDate: "2026-01-02"},
		{Type: domain.RestrictionMinAdvance, Value: 0, StartDate: "2026-01-01", EndDate: "2026-01-02"},
		{Type: domain.RestrictionMinAdvance, Value: 2, StartDate: "2026-01-05", EndDate: "2026-01-02"},
		{Type: domain.RestrictionMinAdvance, Value: 2, StartDate: "soon", EndDate: "2026-01-02"},
	}
	for _, in := range bad {
		if _, err := bo.SaveRestriction(ctx, in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected validation error, got %v", in, err)
		}
	}
	if err := bo.DeleteRestriction(ctx, br.ID); err != nil {
		t.Fatalf("delete restriction: %v", err)
	}
}

func TestOTAConnections(t *testing.T) {
	st := memory.NewSeeded()
	bo := app.NewBackOffice(st)
	ctx := context.Background()

	c, err := bo.ConnectOTA(ctx, "Airbnb", "airbnb-4471")
	if err != nil || !c.Connected || c.PropertyID == nil || *c.PropertyID != "airbnb-4471" || c.LastSync == nil {
		t.Fatalf("connect: %+v (%v)", c, err)
	}
	if c, err = bo.DisconnectOTA(ctx, "Airbnb"); err != nil || c.Connected || c.PropertyID != nil {
		t.Fatalf("disconnect: %+v (%v)", c, err)
	}
	if _, err := bo.ConnectOTA(ctx, "Airbnb", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := bo.ConnectOTA(ctx, "Hostelworld", "hw-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
