// Package catalog holds the storage-independent reconciliation rules:
// how a freshly mapped base event merges into its persisted snapshot and
// how the summary projection follows.
package catalog

import (
	v1 "github.com/aevon-lab/catalog-sync/internal/api/v1"
	"github.com/google/uuid"
)

// DiffOptions tunes ComputeDiff.
type DiffOptions struct {
	// BackfillSummaries creates a missing summary for an already stored
	// event of an online base event. When false, summaries are created only
	// together with a newly inserted event.
	BackfillSummaries bool
}

// DefaultDiffOptions keeps summary presence in step with the sell mode.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{BackfillSummaries: true}
}

// EntityDiff lists the row changes for one entity kind.
type EntityDiff[T any] struct {
	Inserts []T
	Updates []T
	Deletes []T
}

// Len returns the total number of changes.
func (d EntityDiff[T]) Len() int {
	return len(d.Inserts) + len(d.Updates) + len(d.Deletes)
}

// ChangeSet is the minimal set of writes that brings one stored base event
// in line with its incoming version.
//
// Rows are flat: an inserted Event still carries its Zones for reference,
// but each zone row is listed separately in Zones.Inserts. Base events and
// events are never deleted.
type ChangeSet struct {
	BaseEvents EntityDiff[v1.BaseEvent]
	Events     EntityDiff[v1.Event]
	Zones      EntityDiff[v1.Zone]
	Summaries  EntityDiff[v1.Summary]
}

// Empty reports whether applying the change set would write nothing.
func (c ChangeSet) Empty() bool {
	return c.BaseEvents.Len()+c.Events.Len()+c.Zones.Len()+c.Summaries.Len() == 0
}

// ComputeDiff compares incoming against stored (nil when the base event is
// unknown) and the summaries currently stored for its events, keyed by
// event id. It is a pure function; neither input is modified.
//
// Matching is by exact external identifier: events within the base event,
// zones within their own event. Zones missing from the incoming event are
// deleted. Updates are only emitted for rows whose values change, so
// diffing a snapshot against identical data yields an empty change set.
func ComputeDiff(stored *v1.BaseEvent, summaries map[uuid.UUID]v1.Summary, incoming v1.BaseEvent, opts DiffOptions) ChangeSet {
	var cs ChangeSet
	online := incoming.SellMode.IsOnline()
	events := dedupeEvents(incoming.Events)

	if stored == nil {
		cs.BaseEvents.Inserts = append(cs.BaseEvents.Inserts, scalarBaseEvent(incoming))
		for _, evt := range events {
			cs.insertEvent(withOwner(evt, incoming.ID), incoming.Title, online)
		}
		return cs
	}

	if stored.Title != incoming.Title || stored.SellMode != incoming.SellMode {
		updated := scalarBaseEvent(*stored)
		updated.Title = incoming.Title
		updated.SellMode = incoming.SellMode
		cs.BaseEvents.Updates = append(cs.BaseEvents.Updates, updated)
	}

	seen := make(map[int64]struct{}, len(events))
	for _, in := range events {
		seen[in.ExternalID] = struct{}{}

		existing := stored.FindEvent(in.ExternalID)
		if existing == nil {
			cs.insertEvent(withOwner(in, stored.ID), incoming.Title, online)
			continue
		}

		merged := cs.mergeEvent(*existing, in)
		cs.syncSummary(merged, summaries, incoming.Title, online, opts)
	}

	// Stored events the feed no longer lists are kept; their summaries
	// still follow the base event's sell mode and title.
	for _, existing := range stored.Events {
		if _, ok := seen[existing.ExternalID]; ok {
			continue
		}
		cs.syncSummary(existing, summaries, incoming.Title, online, opts)
	}

	return cs
}

func (cs *ChangeSet) insertEvent(evt v1.Event, title string, online bool) {
	cs.Events.Inserts = append(cs.Events.Inserts, evt)
	cs.Zones.Inserts = append(cs.Zones.Inserts, evt.Zones...)
	if online {
		cs.Summaries.Inserts = append(cs.Summaries.Inserts, BuildSummary(evt, title))
	}
}

// mergeEvent applies in onto existing, records the event and zone changes,
// and returns the resulting event with its converged zone set.
func (cs *ChangeSet) mergeEvent(existing, in v1.Event) v1.Event {
	merged := existing
	merged.StartsAt = in.StartsAt
	merged.EndsAt = in.EndsAt
	merged.SellFrom = in.SellFrom
	merged.SellTo = in.SellTo
	merged.SoldOut = in.SoldOut

	for _, ez := range existing.Zones {
		if in.FindZone(ez.ExternalID) == nil {
			cs.Zones.Deletes = append(cs.Zones.Deletes, ez)
		}
	}

	zones := make([]v1.Zone, 0, len(in.Zones))
	for _, z := range in.Zones {
		ez := existing.FindZone(z.ExternalID)
		if ez == nil {
			added := z
			added.EventID = existing.ID
			cs.Zones.Inserts = append(cs.Zones.Inserts, added)
			zones = append(zones, added)
			continue
		}

		updated := *ez
		updated.Capacity = z.Capacity
		updated.Price = z.Price
		updated.Name = z.Name
		updated.Numbered = z.Numbered
		if !zoneEqual(*ez, updated) {
			cs.Zones.Updates = append(cs.Zones.Updates, updated)
		}
		zones = append(zones, updated)
	}

	merged.Zones = zones
	if !eventScalarsEqual(existing, merged) {
		cs.Events.Updates = append(cs.Events.Updates, merged)
	}
	return merged
}

// syncSummary makes the stored summary of evt match the sell mode.
func (cs *ChangeSet) syncSummary(evt v1.Event, summaries map[uuid.UUID]v1.Summary, title string, online bool, opts DiffOptions) {
	existing, ok := summaries[evt.ID]
	if !online {
		if ok {
			cs.Summaries.Deletes = append(cs.Summaries.Deletes, existing)
		}
		return
	}

	desired := BuildSummary(evt, title)
	if ok {
		if !SummaryEqual(existing, desired) {
			cs.Summaries.Updates = append(cs.Summaries.Updates, desired)
		}
		return
	}
	if opts.BackfillSummaries {
		cs.Summaries.Inserts = append(cs.Summaries.Inserts, desired)
	}
}

// dedupeEvents keeps one event per external id, the last one listed,
// at the position of its first appearance.
func dedupeEvents(events []v1.Event) []v1.Event {
	index := make(map[int64]int, len(events))
	out := make([]v1.Event, 0, len(events))
	for _, evt := range events {
		if i, ok := index[evt.ExternalID]; ok {
			out[i] = evt
			continue
		}
		index[evt.ExternalID] = len(out)
		out = append(out, evt)
	}
	return out
}

// withOwner returns a copy of evt whose back-references point at its owners.
func withOwner(evt v1.Event, baseEventID int64) v1.Event {
	evt.BaseEventID = baseEventID
	zones := make([]v1.Zone, len(evt.Zones))
	for i, z := range evt.Zones {
		z.EventID = evt.ID
		zones[i] = z
	}
	evt.Zones = zones
	return evt
}

func scalarBaseEvent(be v1.BaseEvent) v1.BaseEvent {
	be.Events = nil
	return be
}

func eventScalarsEqual(a, b v1.Event) bool {
	return a.StartsAt.Equal(b.StartsAt) &&
		a.EndsAt.Equal(b.EndsAt) &&
		a.SellFrom.Equal(b.SellFrom) &&
		a.SellTo.Equal(b.SellTo) &&
		a.SoldOut == b.SoldOut
}

func zoneEqual(a, b v1.Zone) bool {
	return a.Capacity == b.Capacity &&
		a.Price.Equal(b.Price) &&
		a.Name == b.Name &&
		a.Numbered == b.Numbered
}
