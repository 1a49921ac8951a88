package route

import (
	"fmt"

	"github.com/FACorreiaa/cohana-api/internal/types"
)

const (
	routeStopCount = 4
	routeRadiusKm  = 3
)

func getRoutePrompt(lat, lng types.Coordinate, vibe string) string {
	return fmt.Sprintf(`
        Act as a local tour guide. I am at coordinates: %s, %s.
        Create a route strictly containing %d REAL, EXISTING locations nearby (within %dkm) suitable for a '%s' vibe.

        CRITICAL INSTRUCTION:
        Return ONLY a valid JSON array. Do NOT use markdown code blocks like `+"```json"+`.
        Do NOT write any introduction text. Just the raw JSON string.

        JSON Structure:
        [
            { "name": "Place Name", "lat": 0.0, "lng": 0.0, "description": "Short description" }
        ]
    `, lat, lng, routeStopCount, routeRadiusKm, vibe)
}
