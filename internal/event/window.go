package event

import (
	"time"

	"github.com/livp123/evtxsift/pkg/errors"
)

// TimeWindow is an inclusive [Start, End] range. Each side is open unless it
// was set by NewTimeWindow, so 0001-01-01 is a real bound.
// TimeWindow 是闭区间 [Start, End]，只有通过 NewTimeWindow 设置的一侧才生效。
type TimeWindow struct {
	Start time.Time
	End   time.Time

	hasStart bool
	hasEnd   bool
}

// ParseDate parses YYYY-MM-DD as midnight UTC at the start of that date.
// ParseDate 将 YYYY-MM-DD 解析为该日期 UTC 零点。
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.NewDateError(s)
	}
	return t.UTC(), nil
}

// NewTimeWindow builds a window from optional YYYY-MM-DD bounds; an empty
// string leaves that side open. The end date also maps to midnight, so
// end=2024-01-31 stops at 2024-01-31 00:00:00 UTC.
func NewTimeWindow(start, end string) (TimeWindow, error) {
	var w TimeWindow
	var err error
	if start != "" {
		if w.Start, err = ParseDate(start); err != nil {
			return TimeWindow{}, err
		}
		w.hasStart = true
	}
	if end != "" {
		if w.End, err = ParseDate(end); err != nil {
			return TimeWindow{}, err
		}
		w.hasEnd = true
	}
	return w, nil
}

// Active reports whether any bound is set.
func (w TimeWindow) Active() bool {
	return w.hasStart || w.hasEnd
}

// Contains reports whether ts lies in the window. A record without a usable
// timestamp (ok == false) only passes when no bound is set.
func (w TimeWindow) Contains(ts time.Time, ok bool) bool {
	if !ok {
		return !w.Active()
	}
	if w.hasStart && ts.Before(w.Start) {
		return false
	}
	if w.hasEnd && ts.After(w.End) {
		return false
	}
	return true
}

func (w TimeWindow) String() string {
	start, end := "-inf", "+inf"
	if w.hasStart {
		start = w.Start.Format(time.RFC3339)
	}
	if w.hasEnd {
		end = w.End.Format(time.RFC3339)
	}
	return "[" + start + ", " + end + "]"
}
