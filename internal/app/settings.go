package app

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"hostel_pms/internal/domain"
)

// SaveSetting replaces one settings document with doc.
func (s *BackOffice) SaveSetting(ctx context.Context, key domain.Setting, doc json.RawMessage) (json.RawMessage, error) {
	return s.store.UpdateSetting(ctx, key, func(json.RawMessage) (json.RawMessage, error) {
		return doc, nil
	})
}

// SaveFacilities replaces the facilities list inside the site content and
// leaves the other sections alone.
func (s *BackOffice) SaveFacilities(ctx context.Context, facilities json.RawMessage) (json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(facilities, &list); err != nil {
		return nil, invalidf("facilities must be a list")
	}
	return s.mergeInto(ctx, domain.SettingSiteContent, "facilities", facilities)
}

// SaveStaffDocument stores an onboarding plan or a performance review under
// the staff member's id.
func (s *BackOffice) SaveStaffDocument(ctx context.Context, key domain.Setting, staffID string, doc json.RawMessage) (json.RawMessage, error) {
	if key != domain.SettingOnboardingPlans && key != domain.SettingPerformanceReviews {
		return nil, invalidf("%s is not a per-staff document", key)
	}
	if !s.store.Staff().Has(ctx, staffID) {
		return nil, invalidf("staff %q does not exist", staffID)
	}
	return s.mergeInto(ctx, key, staffID, doc)
}

// mergeInto sets field of the JSON object stored under key. A missing or
// null document starts out empty.
func (s *BackOffice) mergeInto(ctx context.Context, key domain.Setting, field string, v json.RawMessage) (json.RawMessage, error) {
	if !json.Valid(v) {
		return nil, invalidf("%s.%s is not valid JSON", key, field)
	}
	return s.store.UpdateSetting(ctx, key, func(cur json.RawMessage) (json.RawMessage, error) {
		obj := map[string]json.RawMessage{}
		if len(cur) > 0 && string(cur) != "null" {
			if err := json.Unmarshal(cur, &obj); err != nil {
				return nil, invalidf("%s is not an object", key)
			}
		}
		obj[field] = v
		return json.Marshal(obj)
	})
}

// UpdateProperty replaces the property profile; the id is kept.
func (s *BackOffice) UpdateProperty(ctx context.Context, id string, in domain.PropertyInfo) (domain.PropertyInfo, error) {
	if in.Name == "" {
		return domain.PropertyInfo{}, invalidf("property name is required")
	}
	return s.store.Properties().Update(ctx, id, func(p *domain.PropertyInfo) error {
		in.ID = p.ID
		in.Rules = slices.Clone(in.Rules)
		*p = in
		return nil
	})
}

// ---- marketing ----

// SchedulePost queues a social post; drafts need no schedule.
func (s *BackOffice) SchedulePost(ctx context.Context, p domain.ScheduledPost) (domain.ScheduledPost, error) {
	if p.Platform == "" || p.Content == "" {
		return domain.ScheduledPost{}, invalidf("post needs a platform and content")
	}
	if p.Status == "" {
		p.Status = domain.PostScheduled
	}
	if p.Status == domain.PostScheduled {
		if _, err := time.Parse(time.RFC3339, p.ScheduledAt); err != nil {
			return domain.ScheduledPost{}, invalidf("scheduledAt %q", p.ScheduledAt)
		}
	}
	p.ID = freshID("POST", func(id string) bool { return s.store.ScheduledPosts().Has(ctx, id) })
	p.Log = []domain.PostLogEntry{{Timestamp: s.stamp(), Message: "Post " + p.Status}}
	return s.store.ScheduledPosts().Insert(ctx, p)
}

func (s *BackOffice) DeletePost(ctx context.Context, id string) error {
	return s.store.ScheduledPosts().Delete(ctx, id)
}

func (s *BackOffice) AddMediaAsset(ctx context.Context, a domain.MediaAsset) (domain.MediaAsset, error) {
	if a.Type != "image" && a.Type != "video" {
		return domain.MediaAsset{}, invalidf("media type %q", a.Type)
	}
	if a.URL == "" {
		return domain.MediaAsset{}, invalidf("media url is required")
	}
	a.ID = freshID("MED", func(id string) bool { return s.store.Media().Has(ctx, id) })
	a.CreatedAt = s.stamp()
	return s.store.Media().Insert(ctx, a)
}

func (s *BackOffice) DeleteMediaAsset(ctx context.Context, id string) error {
	return s.store.Media().Delete(ctx, id)
}
