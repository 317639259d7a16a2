package worksession

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/timeutil"
)

// BuildTimeline reconstructs the ordered, non-overlapping segment list
// for a session. Pure and deterministic: safe to recompute on every read
// or display tick. Three document generations are supported:
//
//   - the per-activity log (preferred when present),
//   - the legacy break-interval log, reconstructed by walking gaps,
//   - the oldest numeric-keyed import payload.
//
// The input is externally writable and not guaranteed clean, so the
// builder never rejects a session; it emits the best ordered view it can.
func BuildTimeline(s worksession.WorkSession, now time.Time) []worksession.Segment {
	switch {
	case len(s.Activities) > 0:
		return timelineFromActivities(s, now)
	case len(s.Breaks) == 0 && len(s.LegacySegments) > 0:
		return timelineFromLegacySegments(s, now)
	default:
		return timelineFromBreaks(s, now)
	}
}

func timelineFromActivities(s worksession.WorkSession, now time.Time) []worksession.Segment {
	segments := make([]worksession.Segment, 0, len(s.Activities)+2)

	seen := make(map[int64]struct{}, len(s.Activities))
	for _, act := range s.Activities {
		seg := worksession.Segment{
			Type:      activitySegmentType(act),
			StartTime: act.StartTime,
			EndTime:   act.EndTime,
			Cause:     act.Cause,
		}
		seg.DurationSeconds = intervalSeconds(act.StartTime, act.EndTime, now)
		segments = append(segments, seg)
		seen[act.StartTime.UnixMilli()] = struct{}{}
	}

	// Documents written during the schema migration window can carry
	// system events only in the break log. Fold those in.
	for _, brk := range s.Breaks {
		if !brk.IsSystemEvent {
			continue
		}
		if _, dup := seen[brk.StartTime.UnixMilli()]; dup {
			continue
		}
		cause := brk.Cause
		segments = append(segments, worksession.Segment{
			Type:            worksession.SegmentSystemEvent,
			StartTime:       brk.StartTime,
			EndTime:         brk.EndTime,
			DurationSeconds: intervalSeconds(brk.StartTime, brk.EndTime, now),
			Cause:           &cause,
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].StartTime.Before(segments[j].StartTime)
	})
	return segments
}

func timelineFromBreaks(s worksession.WorkSession, now time.Time) []worksession.Segment {
	breaks := make([]worksession.BreakEntry, len(s.Breaks))
	copy(breaks, s.Breaks)
	// Entries are appended in event order but may be out of order by
	// start time after manager edits; ties keep the original sequence.
	sort.SliceStable(breaks, func(i, j int) bool {
		if breaks[i].StartTime.Equal(breaks[j].StartTime) {
			return breaks[i].Seq < breaks[j].Seq
		}
		return breaks[i].StartTime.Before(breaks[j].StartTime)
	})

	segments := make([]worksession.Segment, 0, 2*len(breaks)+2)
	cursor := s.ClockIn
	openBreak := false

	for _, brk := range breaks {
		if brk.StartTime.After(cursor) && !openBreak {
			end := brk.StartTime
			segments = append(segments, worksession.Segment{
				Type:            worksession.SegmentWorking,
				StartTime:       cursor,
				EndTime:         &end,
				DurationSeconds: int64(brk.StartTime.Sub(cursor).Seconds()),
			})
		}

		segType := worksession.SegmentOnBreak
		if brk.IsSystemEvent {
			segType = worksession.SegmentSystemEvent
		}
		cause := brk.Cause
		segments = append(segments, worksession.Segment{
			Type:            segType,
			StartTime:       brk.StartTime,
			EndTime:         brk.EndTime,
			DurationSeconds: intervalSeconds(brk.StartTime, brk.EndTime, now),
			Cause:           &cause,
		})

		if brk.EndTime != nil {
			if brk.EndTime.After(cursor) {
				cursor = *brk.EndTime
			}
		} else {
			// No segment may start before an open break closes.
			if brk.StartTime.After(cursor) {
				cursor = brk.StartTime
			}
			openBreak = true
		}
	}

	sessionEnd, hasEnd := sessionEndTime(s, now)
	if hasEnd && !openBreak && sessionEnd.After(cursor) {
		seg := worksession.Segment{
			Type:            worksession.SegmentWorking,
			StartTime:       cursor,
			DurationSeconds: int64(sessionEnd.Sub(cursor).Seconds()),
		}
		if s.Status == worksession.StatusClockedOut {
			end := sessionEnd
			seg.EndTime = &end
		}
		segments = append(segments, seg)
	}

	return segments
}

// sessionEndTime returns where the trailing working segment may extend
// to. On-break sessions have no trailing end: the open break is the last
// word until it closes.
func sessionEndTime(s worksession.WorkSession, now time.Time) (time.Time, bool) {
	switch s.Status {
	case worksession.StatusClockedOut:
		if s.ClockOut != nil {
			return timeutil.ResolveClockOut(s.ClockIn, *s.ClockOut), true
		}
		return s.LastEventAt, true
	case worksession.StatusOnBreak:
		return time.Time{}, false
	default:
		return now, true
	}
}

// legacySegment is one entry of the numeric-keyed import payload. Its
// timestamps come in whatever shape the exporter produced.
type legacySegment struct {
	Type            *string `json:"type"`
	StartTime       any     `json:"startTime"`
	EndTime         any     `json:"endTime"`
	DurationSeconds *int64  `json:"durationSeconds"`
}

func timelineFromLegacySegments(s worksession.WorkSession, now time.Time) []worksession.Segment {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(s.LegacySegments, &keyed); err != nil {
		return nil
	}

	type positioned struct {
		pos   int
		entry legacySegment
	}
	entries := make([]positioned, 0, len(keyed))
	for key, raw := range keyed {
		pos, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		var entry legacySegment
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		entries = append(entries, positioned{pos: pos, entry: entry})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].pos < entries[j].pos })

	segments := make([]worksession.Segment, 0, len(entries))
	for i, p := range entries {
		start, ok := timeutil.ToInstant(p.entry.StartTime)
		if !ok {
			continue
		}

		var segType worksession.SegmentType
		if p.entry.Type != nil {
			segType = legacySegmentType(*p.entry.Type)
		} else if i%2 == 0 {
			// Typeless importer rows alternate working/break by position.
			// A legacy quirk carried over as-is for old documents.
			segType = worksession.SegmentWorking
		} else {
			segType = worksession.SegmentOnBreak
		}

		seg := worksession.Segment{Type: segType, StartTime: start}
		if end, ok := timeutil.ToInstant(p.entry.EndTime); ok {
			e := end
			seg.EndTime = &e
		}
		switch {
		case p.entry.DurationSeconds != nil:
			seg.DurationSeconds = *p.entry.DurationSeconds
		default:
			seg.DurationSeconds = intervalSeconds(start, seg.EndTime, now)
		}
		segments = append(segments, seg)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].StartTime.Before(segments[j].StartTime)
	})
	return segments
}

// intervalSeconds measures start..end, using now for open intervals.
// Inverted intervals count as zero rather than negative.
func intervalSeconds(start time.Time, end *time.Time, now time.Time) int64 {
	effective := now
	if end != nil {
		effective = *end
	}
	if !effective.After(start) {
		return 0
	}
	return int64(effective.Sub(start).Seconds())
}

func activitySegmentType(act worksession.ActivityEntry) worksession.SegmentType {
	if act.IsSystemEvent {
		return worksession.SegmentSystemEvent
	}
	switch strings.ToLower(string(act.Type)) {
	case "on_break", "onbreak", "break":
		return worksession.SegmentOnBreak
	default:
		return worksession.SegmentWorking
	}
}

func legacySegmentType(raw string) worksession.SegmentType {
	switch strings.ToLower(raw) {
	case "break", "on_break", "onbreak":
		return worksession.SegmentOnBreak
	case "system_event", "systemevent":
		return worksession.SegmentSystemEvent
	default:
		return worksession.SegmentWorking
	}
}
