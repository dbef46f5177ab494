// Package planner builds single-day itinerary prompts, sends them through the
// gateway, and decodes the model's answer.
package planner

import "google.golang.org/genai"

// Preferences describes the trip the traveler wants planned.
type Preferences struct {
	Location      string
	StartDate     string
	Likes         string
	Dislikes      string
	VisitedPlaces string
	Timeframe     string
}

type Activity struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Time              string `json:"time"`
	Address           string `json:"address"`
	TimeSensitive     bool   `json:"timeSensitive,omitempty"`
	TimeSensitiveNote string `json:"timeSensitiveNote,omitempty"`
}

type Day struct {
	Day          int        `json:"day,omitempty"`
	CalendarDate string     `json:"calendarDate,omitempty"`
	Theme        string     `json:"theme"`
	Activities   []Activity `json:"activities"`
}

type Itinerary struct {
	Title string `json:"title"`
	Days  []Day  `json:"days"`
}

// Citation is a grounding source returned alongside the model answer.
type Citation struct {
	Web  *genai.GroundingChunkWeb  `json:"web,omitempty"`
	Maps *genai.GroundingChunkMaps `json:"maps,omitempty"`
}

// URI returns the web link when present, falling back to the maps link.
func (c Citation) URI() string {
	if c.Web != nil && c.Web.URI != "" {
		return c.Web.URI
	}
	if c.Maps != nil {
		return c.Maps.URI
	}
	return ""
}

func (c Citation) Title() string {
	if c.Web != nil && c.Web.URI != "" {
		return c.Web.Title
	}
	if c.Maps != nil {
		return c.Maps.Title
	}
	return ""
}

type Result struct {
	Itinerary Itinerary  `json:"itinerary"`
	Citations []Citation `json:"citations"`
}
