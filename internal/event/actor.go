package event

import (
	"github.com/livp123/evtxsift/internal/utils/fileutil"
	"github.com/livp123/evtxsift/pkg/errors"
)

// AllowList is a read-only set of account names. Matching is exact: no case
// folding and no whitespace trimming, so "Alice" does not match "alice".
// AllowList 是只读的账户名集合，精确匹配（区分大小写，不去除空白）。
type AllowList map[string]struct{}

func NewAllowList(names []string) AllowList {
	l := make(AllowList, len(names))
	for _, n := range names {
		l[n] = struct{}{}
	}
	return l
}

// LoadAllowList reads one name per line. An unreadable file is fatal to the caller.
func LoadAllowList(path string) (AllowList, error) {
	names, err := fileutil.ReadExactLines(path)
	if err != nil {
		return nil, errors.NewAllowListError(path, err)
	}
	return NewAllowList(names), nil
}

func (l AllowList) Len() int { return len(l) }

// Matches reports whether ev passes the actor filter. An empty list matches everything.
func (l AllowList) Matches(ev *Event) bool {
	if len(l) == 0 {
		return true
	}
	name, ok := ev.Actor()
	if !ok {
		return false
	}
	_, ok = l[name]
	return ok
}
