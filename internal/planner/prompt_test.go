package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-18", "2025-03-18"},
		{"2025-03-18T09:30:00Z", "2025-03-18"},
		{"03/18/2025", "2025-03-18"},
		{"March 18, 2025", "2025-03-18"},
		{"next tuesday", "next tuesday"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalDate(tt.in), tt.in)
	}
}

func TestBuildPrompt_DefaultTimeframe(t *testing.T) {
	prompt := BuildPrompt(Preferences{
		Location:  "Porto",
		StartDate: "03/18/2025",
		Likes:     "wine, tiles",
		Dislikes:  "crowds",
	})

	assert.Contains(t, prompt, "itinerary for Porto on 2025-03-18.")
	assert.Contains(t, prompt, "- Likes: wine, tiles")
	assert.Contains(t, prompt, "- Dislikes/Blacklist (avoid these): crowds")
	assert.Contains(t, prompt, "- Places already visited (do not include these): None provided")
	assert.Contains(t, prompt, "- Desired timeframe: All day")
	assert.Contains(t, prompt, "spans morning through evening")
	assert.Contains(t, prompt, `"Porto events 2025-03-18"`)
	assert.NotContains(t, prompt, "already experienced")
	assert.Contains(t, prompt, `"calendarDate"`)
}

func TestBuildPrompt_CustomTimeframeAndVisited(t *testing.T) {
	prompt := BuildPrompt(Preferences{
		Location:      "Lisbon",
		StartDate:     "sometime soon",
		Timeframe:     "  2 PM - 8 PM ",
		VisitedPlaces: " Belem Tower ",
	})

	assert.Contains(t, prompt, "on sometime soon.")
	assert.Contains(t, prompt, "- Desired timeframe: 2 PM - 8 PM")
	assert.Contains(t, prompt, "fits within this window: 2 PM - 8 PM.")
	assert.NotContains(t, prompt, "spans morning through evening")
	assert.Contains(t, prompt, "already experienced: Belem Tower.")
	assert.Contains(t, prompt, "(do not include these): Belem Tower")
}

func TestBuildPrompt_MissingDate(t *testing.T) {
	prompt := BuildPrompt(Preferences{Location: "Kyoto", Timeframe: "all day"})

	assert.Contains(t, prompt, "on the specified date.")
	assert.Contains(t, prompt, "spans morning through evening")
}
