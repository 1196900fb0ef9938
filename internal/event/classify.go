package event

// CategorySet is a set of EventIDs.
type CategorySet map[uint16]struct{}

// DefaultCategories are the authentication events kept by a triage run:
// successful/failed logon, Kerberos TGT/service ticket, NTLM validation and
// special privileges assigned to a new logon.
// DefaultCategories 是分诊时保留的认证相关事件。
var DefaultCategories = NewCategorySet(4624, 4625, 4768, 4769, 4776, 4672)

func NewCategorySet(ids ...uint16) CategorySet {
	s := make(CategorySet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s CategorySet) Contains(id uint16) bool {
	_, ok := s[id]
	return ok
}
