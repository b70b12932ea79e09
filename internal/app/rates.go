package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hostel_pms/internal/domain"
)

// SaveRatePlan inserts a plan without an id and replaces an existing one
// otherwise. Saving a default plan clears the flag on every other plan.
func (s *BackOffice) SaveRatePlan(ctx context.Context, rp domain.RatePlan) (domain.RatePlan, error) {
	if rp.Name == "" {
		return domain.RatePlan{}, invalidf("rate plan name is required")
	}
	if !domain.ValidModifierType(rp.ModifierType) {
		return domain.RatePlan{}, invalidf("modifier type %q", rp.ModifierType)
	}
	out, err := save(ctx, s.store.RatePlans(), "RP", rp, func(v *domain.RatePlan, id string) { v.ID = id })
	if err != nil || !out.IsDefault {
		return out, err
	}
	for _, other := range s.store.RatePlans().List(ctx) {
		if other.ID == out.ID || !other.IsDefault {
			continue
		}
		if _, err := s.store.RatePlans().Update(ctx, other.ID, func(p *domain.RatePlan) error {
			p.IsDefault = false
			return nil
		}); err != nil {
			log.Warn().Err(err).Str("rate_plan", other.ID).Msg("default flag not cleared")
		}
	}
	return out, nil
}

// DeleteRatePlan refuses the default plan; bookings fall back to it.
func (s *BackOffice) DeleteRatePlan(ctx context.Context, id string) error {
	rp, err := s.store.RatePlans().Get(ctx, id)
	if err != nil {
		return err
	}
	if rp.IsDefault {
		return invalidf("rate plan %s is the default and cannot be deleted", id)
	}
	return s.store.RatePlans().Delete(ctx, id)
}

func (s *BackOffice) SaveAddOn(ctx context.Context, a domain.AddOn) (domain.AddOn, error) {
	if a.Name == "" || a.Price < 0 {
		return domain.AddOn{}, invalidf("add-on needs a name and a price of zero or more")
	}
	return save(ctx, s.store.AddOns(), "AO", a, func(v *domain.AddOn, id string) { v.ID = id })
}

func (s *BackOffice) DeleteAddOn(ctx context.Context, id string) error {
	return s.store.AddOns().Delete(ctx, id)
}

// SaveRestriction stores a minimum-stay or minimum-advance rule for a date
// range.
func (s *BackOffice) SaveRestriction(ctx context.Context, br domain.BookingRestriction) (domain.BookingRestriction, error) {
	switch br.Type {
	case domain.RestrictionMinStay, domain.RestrictionMinAdvance:
	default:
		return domain.BookingRestriction{}, invalidf("restriction type %q", br.Type)
	}
	if br.Value <= 0 {
		return domain.BookingRestriction{}, invalidf("restriction value must be positive")
	}
	start, err := time.Parse(time.DateOnly, br.StartDate)
	if err != nil {
		return domain.BookingRestriction{}, invalidf("start date %q", br.StartDate)
	}
	end, err := time.Parse(time.DateOnly, br.EndDate)
	if err != nil {
		return domain.BookingRestriction{}, invalidf("end date %q", br.EndDate)
	}
	if end.Before(start) {
		return domain.BookingRestriction{}, invalidf("restriction ends before it starts")
	}
	return save(ctx, s.store.Restrictions(), "BR", br, func(v *domain.BookingRestriction, id string) { v.ID = id })
}

func (s *BackOffice) DeleteRestriction(ctx context.Context, id string) error {
	return s.store.Restrictions().Delete(ctx, id)
}

// ConnectOTA links a channel to the property's listing there.
func (s *BackOffice) ConnectOTA(ctx context.Context, platform, propertyID string) (domain.OTAConnection, error) {
	if propertyID == "" {
		return domain.OTAConnection{}, invalidf("propertyId is required")
	}
	ts := s.stamp()
	out, err := s.store.OTAConnections().Update(ctx, platform, func(c *domain.OTAConnection) error {
		c.Connected = true
		c.PropertyID = &propertyID
		c.LastSync = &ts
		return nil
	})
	if err == nil {
		log.Info().Str("platform", platform).Str("listing", propertyID).Msg("ota connected")
	}
	return out, err
}

func (s *BackOffice) DisconnectOTA(ctx context.Context, platform string) (domain.OTAConnection, error) {
	return s.store.OTAConnections().Update(ctx, platform, func(c *domain.OTAConnection) error {
		c.Connected = false
		c.PropertyID = nil
		return nil
	})
}

// save inserts v under a fresh id when key is empty and replaces the
// stored row otherwise.
func save[V domain.Keyed[string]](ctx context.Context, c domain.Collection[string, V], prefix string, v V, setID func(*V, string)) (V, error) {
	if v.Key() == "" {
		setID(&v, freshID(prefix, func(id string) bool { return c.Has(ctx, id) }))
		return c.Insert(ctx, v)
	}
	return c.Update(ctx, v.Key(), func(cur *V) error {
		*cur = v
		return nil
	})
}
