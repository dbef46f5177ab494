package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

// ErrInvalidFormat means the model text could not be decoded as an itinerary.
var ErrInvalidFormat = errors.New("the model returned an invalid itinerary format")

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ParseResponse decodes a generateContent body as forwarded by the gateway.
func ParseResponse(body []byte) (*Result, error) {
	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}

	text := extractJSON(resp.Text())

	var itinerary Itinerary
	if err := json.Unmarshal([]byte(text), &itinerary); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return &Result{Itinerary: itinerary, Citations: citations(&resp)}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

func citations(resp *genai.GenerateContentResponse) []Citation {
	out := []Citation{}
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return out
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		hasWeb := chunk.Web != nil && chunk.Web.URI != ""
		hasMaps := chunk.Maps != nil && chunk.Maps.URI != ""
		if !hasWeb && !hasMaps {
			continue
		}
		out = append(out, Citation{Web: chunk.Web, Maps: chunk.Maps})
	}
	return out
}
