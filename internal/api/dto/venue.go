package dto

type VenueResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Position      CoordinatePoint `json:"position"`
	VisitDuration int             `json:"visitDuration"`
	Category      string          `json:"category"`
	Popularity    float64         `json:"popularity"`
	Tags          []string        `json:"tags"`
	Address       string          `json:"address"`
	WebsiteURL    string          `json:"websiteUrl"`
}

type ListVenuesResponse struct {
	Venues []VenueResponse `json:"venues"`
}
