package planner

import (
	"fmt"
	"strings"
	"time"
)

const defaultTimeframe = "All day"

var startDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// canonicalDate renders parseable dates as YYYY-MM-DD and leaves anything else as given.
func canonicalDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.DateOnly)
		}
	}
	return raw
}

func timeframeLabel(timeframe string) string {
	if tf := strings.TrimSpace(timeframe); tf != "" {
		return tf
	}
	return defaultTimeframe
}

func scheduleInstruction(label string) string {
	if strings.EqualFold(label, defaultTimeframe) {
		return "Build a balanced plan that spans morning through evening with realistic transitions between activities."
	}
	return fmt.Sprintf("Ensure the entire schedule fits within this window: %s. Choose opening times and transitions that respect that timeframe.", label)
}

// BuildPrompt renders the itinerary instructions sent as the proxy prompt.
func BuildPrompt(p Preferences) string {
	date := canonicalDate(p.StartDate)
	datePhrase := date
	if datePhrase == "" {
		datePhrase = "the specified date"
	}
	label := timeframeLabel(p.Timeframe)
	visited := strings.TrimSpace(p.VisitedPlaces)
	visitedList := visited
	if visitedList == "" {
		visitedList = "None provided"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed single-day travel itinerary for %s on %s.\n\n", p.Location, datePhrase)

	b.WriteString("Traveler preferences:\n")
	fmt.Fprintf(&b, "- Likes: %s\n", p.Likes)
	fmt.Fprintf(&b, "- Dislikes/Blacklist (avoid these): %s\n", p.Dislikes)
	fmt.Fprintf(&b, "- Places already visited (do not include these): %s\n", visitedList)
	fmt.Fprintf(&b, "- Desired timeframe: %s\n\n", label)

	b.WriteString("Your task is to generate a complete daytrip itinerary.\n")
	b.WriteString("- Be creative and suggest a mix of popular spots and hidden gems.\n")
	b.WriteString("- Use the search tool to find interesting, relevant, and time-sensitive events or locations that occur on the single day that the user has specified.\n")
	b.WriteString("- Make sure each day's plan corresponds to the actual calendar date.\n")
	fmt.Fprintf(&b, "- For every day, explicitly search the web for events occurring on that calendar date (examples: \"%[1]s events %[2]s\", \"%[1]s festival\", \"%[1]s flea market %[2]s\", venue-specific calendars). "+
		"Prioritize reputable local event sources such as tourism boards, venue listings, or city blogs. Only include an event if the search confirms it happens on that specific date.\n", p.Location, date)
	b.WriteString("- Include seasonal or date-specific activities (festivals, exhibits, events) when available for those dates, and clearly mark them as time-sensitive.\n")
	fmt.Fprintf(&b, "- When you add a time-sensitive activity, extract a short confirmation note citing the event's date/time (e.g., \"Confirmed via the city events calendar for %s\").\n", date)
	b.WriteString("- Ensure the itinerary flows logically from one location to the next.\n")
	fmt.Fprintf(&b, "- %s\n", scheduleInstruction(label))
	if visited != "" {
		fmt.Fprintf(&b, "- Avoid recommending any of these locations the traveler has already experienced: %s.\n", visited)
	}
	b.WriteString("- Include a \"calendarDate\" property on each day (ISO format YYYY-MM-DD) that matches the real-world date for that day of the trip.\n")
	b.WriteString("- Provide a specific address for each location to be used with a mapping service.\n\n")

	b.WriteString(outputContract)
	return b.String()
}

const outputContract = `The final output MUST be a single, valid JSON object and nothing else. Do not add any text before or after the JSON object. Do not wrap it in markdown backticks.
The JSON object must strictly adhere to the following structure:
{
  "title": "string (A creative and catchy title for the itinerary)",
  "days": [
    {
      "calendarDate": "string (The ISO date for this day of the trip, e.g., '2025-03-18')",
      "theme": "string (A theme for the day's activities)",
      "activities": [
        {
          "name": "string (The name of the place or activity)",
          "description": "string (A brief, engaging description of the activity (2-3 sentences))",
          "time": "string (The suggested time for the activity (e.g., '9:00 AM - 11:00 AM'))",
          "address": "string (The physical address of the location for mapping purposes)",
          "timeSensitive": "boolean (true if this activity only occurs on the specified calendarDate, false otherwise)",
          "timeSensitiveNote": "string (If timeSensitive is true, provide the supporting detail and source used to confirm the date)"
        }
      ]
    }
  ]
}
`
