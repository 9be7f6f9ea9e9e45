package wishbloom

// AggregateContributors builds the deduplicated contributor list of a
// document as a pure reduction over an ordered sequence: the creator first
// (seeded with count 1), then each memory's contributor in array order,
// then each message's contributor in array order. A contributor seen again
// has its count incremented; first-seen order is preserved so the result is
// reproducible.
func AggregateContributors(createdBy Contributor, memories []Memory, messages []Message) []Contributor {
	ordered := make([]Contributor, 0, 1+len(memories)+len(messages))
	index := make(map[string]int)

	add := func(c Contributor, count int) {
		if i, ok := index[c.ID]; ok {
			ordered[i].ContributionCount += count
			// Backfill identity fields the first occurrence lacked.
			if ordered[i].Name == "" {
				ordered[i].Name = c.Name
			}
			if ordered[i].Email == "" {
				ordered[i].Email = c.Email
			}
			return
		}
		index[c.ID] = len(ordered)
		c.ContributionCount = count
		ordered = append(ordered, c)
	}

	add(createdBy, 1)
	for _, m := range memories {
		add(m.Contributor, 1)
	}
	for _, msg := range messages {
		add(msg.Contributor, 1)
	}

	return ordered
}
