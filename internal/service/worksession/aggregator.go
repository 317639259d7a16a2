package worksession

import (
	"strings"
	"time"

	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/presence"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/timeutil"
)

// Aggregate computes the Working / Manual-Break / Idle-Break totals for a
// session at instant now. Pure; recomputed on every tick. At most one
// bucket accrues live time at any instant: an open break takes the live
// interval, otherwise working time accrues only while the presence
// snapshot shows the agent attentive.
func Aggregate(s worksession.WorkSession, p presence.Presence, now time.Time) worksession.DurationSummary {
	// Clocked-out sessions never accrue past their last recorded event.
	cutoff := now
	if s.Status == worksession.StatusClockedOut {
		cutoff = s.LastEventAt
	}

	var summary worksession.DurationSummary

	intervals := breakIntervals(s)
	for _, iv := range intervals {
		effectiveEnd := cutoff
		if iv.end != nil {
			effectiveEnd = *iv.end
		}
		if !effectiveEnd.After(iv.start) {
			continue
		}
		seconds := int64(effectiveEnd.Sub(iv.start).Seconds())
		if iv.idle {
			summary.IdleBreakSeconds += seconds
		} else {
			summary.ManualBreakSeconds += seconds
		}
	}

	// Totals-only documents predate per-break entries entirely; the
	// stored cumulative total is the only record they have.
	if len(intervals) == 0 {
		summary.ManualBreakSeconds = s.TotalBreakSeconds
		if s.Status == worksession.StatusOnBreak {
			if elapsed := now.Sub(s.LastEventAt); elapsed > 0 {
				summary.ManualBreakSeconds += int64(elapsed.Seconds())
			}
		}
	}

	summary.WorkSeconds = workSeconds(s, p, now)
	return summary
}

func workSeconds(s worksession.WorkSession, p presence.Presence, now time.Time) int64 {
	if s.Status == worksession.StatusClockedOut {
		// Recompute from the two server-authoritative boundary
		// timestamps instead of trusting a client-accumulated running
		// total, which drifts across many small increments.
		if s.ClockOut != nil {
			clockOut := timeutil.ResolveClockOut(s.ClockIn, *s.ClockOut)
			span := int64(clockOut.Sub(s.ClockIn).Seconds())
			work := span - s.TotalBreakSeconds
			if work < 0 {
				work = 0
			}
			return work
		}
		return s.TotalWorkSeconds
	}

	work := s.TotalWorkSeconds
	if s.Status == worksession.StatusWorking && p.AccruesWork() {
		if elapsed := now.Sub(s.LastEventAt); elapsed > 0 {
			work += int64(elapsed.Seconds())
		}
	}
	return work
}

type breakInterval struct {
	start time.Time
	end   *time.Time
	idle  bool
}

// breakIntervals flattens whichever log the document carries into
// classified intervals. Screen-lock and other system events count as
// idle, not manual: the agent did not choose them.
func breakIntervals(s worksession.WorkSession) []breakInterval {
	if len(s.Activities) > 0 {
		var out []breakInterval
		seen := make(map[int64]struct{}, len(s.Activities))
		for _, act := range s.Activities {
			seen[act.StartTime.UnixMilli()] = struct{}{}
			if activitySegmentType(act) == worksession.SegmentWorking {
				continue
			}
			idle := act.IsSystemEvent
			if act.Cause != nil {
				idle = idle || isIdleCause(string(*act.Cause))
			}
			out = append(out, breakInterval{start: act.StartTime, end: act.EndTime, idle: idle})
		}
		// Migration-window documents carry system events only in the
		// break log. Count them, like the timeline renders them.
		for _, brk := range s.Breaks {
			if !brk.IsSystemEvent {
				continue
			}
			if _, dup := seen[brk.StartTime.UnixMilli()]; dup {
				continue
			}
			out = append(out, breakInterval{start: brk.StartTime, end: brk.EndTime, idle: true})
		}
		return out
	}

	var out []breakInterval
	for _, brk := range s.Breaks {
		idle := brk.IsSystemEvent || isIdleCause(string(brk.Cause))
		out = append(out, breakInterval{start: brk.StartTime, end: brk.EndTime, idle: idle})
	}
	return out
}

func isIdleCause(cause string) bool {
	c := strings.ToLower(cause)
	return strings.Contains(c, "idle") || c == string(worksession.CauseScreenLock)
}
