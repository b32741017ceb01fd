package reminder

import "github.com/go-med-reminder/internal/domain"

// OffsetGroup is the set of tokens sharing one timezone offset.
type OffsetGroup struct {
	OffsetMinutes int
	Tokens        []string
}

// GroupTokensByOffset partitions targets by timezone offset. Groups are ordered
// by first appearance and tokens keep their encounter order. Targets without a
// usable token are dropped; targets without an offset fall into the UTC group.
func GroupTokensByOffset(targets []domain.NotificationTarget) []OffsetGroup {
	var groups []OffsetGroup
	index := make(map[int]int)
	for _, t := range targets {
		token := t.Token.Trimmed()
		if token == "" {
			continue
		}
		offset := t.TimezoneOffsetMinutes.OrZero()
		i, ok := index[offset]
		if !ok {
			i = len(groups)
			index[offset] = i
			groups = append(groups, OffsetGroup{OffsetMinutes: offset})
		}
		groups[i].Tokens = append(groups[i].Tokens, token)
	}
	return groups
}
