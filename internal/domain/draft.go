package domain

// Draft is an immutable working copy of the venue list a client edits before
// submitting a plan. Commands produce a new Draft; the underlying slice of an
// existing Draft is never mutated.
type Draft struct {
	venues []Venue
}

func NewDraft(venues []Venue) Draft {
	copied := make([]Venue, len(venues))
	copy(copied, venues)
	return Draft{venues: copied}
}

// Venues returns a copy of the draft's current venue list.
func (d Draft) Venues() []Venue {
	out := make([]Venue, len(d.venues))
	copy(out, d.venues)
	return out
}

// Apply returns a new Draft with the command applied. Commands referencing an
// unknown venue id are no-ops rather than errors.
func (d Draft) Apply(cmd DraftCommand) Draft {
	return Draft{venues: cmd.apply(d.Venues())}
}

// DraftCommand is one explicit edit to a venue draft.
type DraftCommand interface {
	apply(venues []Venue) []Venue
}

// RemoveVenue drops a venue from the draft.
type RemoveVenue struct {
	VenueID string
}

func (c RemoveVenue) apply(venues []Venue) []Venue {
	out := venues[:0]
	for _, v := range venues {
		if v.ID != c.VenueID {
			out = append(out, v)
		}
	}
	return out
}

// RenameVenue replaces a venue's display name.
type RenameVenue struct {
	VenueID string
	Name    string
}

func (c RenameVenue) apply(venues []Venue) []Venue {
	for i := range venues {
		if venues[i].ID == c.VenueID {
			venues[i].Name = c.Name
		}
	}
	return venues
}
