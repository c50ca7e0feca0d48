package services

import (
	"fmt"
	"strings"

	"petcare-route-service/internal/domain"
)

// Time-zone label embedded in every prompt so the model interprets the
// visit windows consistently.
const promptTimeZone = "America/Phoenix"

const timeLayout = "3:04 PM"

// BuildPrompt renders the optimization request for the external model.
//
// The output is fully deterministic for a given input: the same visits,
// home base and overlap annotations always produce the same text. Visits
// are numbered 1-based and the reply contract below uses the same
// numbering; the response interpreter depends on that for index
// translation, so the format here must not drift.
func BuildPrompt(visits []domain.Visit, homeBase *domain.HomeBase, overlaps []domain.OverlappingTimeWindow) string {
	var b strings.Builder

	b.WriteString("You are a route planner for a mobile pet-care business.\n")
	b.WriteString("Order today's visits into the most efficient driving route that respects every time window.\n\n")

	if homeBase.IsReady() {
		fmt.Fprintf(&b, "Home base (route start and end): %s", homeBase.Name)
		if homeBase.Address != "" {
			fmt.Fprintf(&b, ", %s", homeBase.Address)
		}
		fmt.Fprintf(&b, " (%.6f, %.6f)\n", homeBase.Coordinate.Lat, homeBase.Coordinate.Lon)
	} else {
		b.WriteString("Home base: not provided. Start the route at the first visit.\n")
	}
	fmt.Fprintf(&b, "All times are in %s.\n\n", promptTimeZone)

	if len(overlaps) > 0 {
		b.WriteString("WARNING: the following visits share an identical time window and need explicit sequencing:\n")
		for _, ow := range overlaps {
			names := make([]string, 0, len(ow.Visits))
			for _, v := range ow.Visits {
				names = append(names, v.PetName)
			}
			fmt.Fprintf(&b, "- %s to %s: %s\n",
				ow.StartTime.Format(timeLayout), ow.EndTime.Format(timeLayout),
				strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("Visits:\n")
	for i, v := range visits {
		fmt.Fprintf(&b, "%d. %s (%s) for %s at %s\n", i+1, v.PetName, v.ServiceType, v.ClientName, v.Address)
		fmt.Fprintf(&b, "   Window: %s - %s, duration %d minutes\n",
			v.StartTime.Format(timeLayout), v.EndTime.Format(timeLayout), v.DurationMinutes)
		fmt.Fprintf(&b, "   Location: %.6f, %.6f\n", v.Coordinate.Lat, v.Coordinate.Lon)
		if v.Notes != "" {
			fmt.Fprintf(&b, "   Notes: %s\n", v.Notes)
		}
	}
	b.WriteString("\n")

	b.WriteString(promptHeuristics)
	b.WriteString("\n")
	b.WriteString(promptOutputFormat)

	return b.String()
}

// Fixed routing-heuristics block with two worked numeric examples.
// Kept as a constant so the prompt stays byte-stable across calls.
const promptHeuristics = `Routing heuristics:
- Visits with earlier window starts generally come first.
- Never schedule a visit outside its time window; if a visit cannot fit, exclude it and say so.
- Between visits with compatible windows, prefer the geographically closer next stop.
- A visit whose window exactly equals its duration has no slack; anchor the route around it.
- estimatedTotalTime is elapsed wall time: driving time plus the service duration of every visit, in minutes.

Worked example 1: two visits, 30 minutes of service each, 10 minutes of driving between them.
estimatedTotalTime = 30 + 10 + 30 = 70 minutes.
Worked example 2: three visits of 20, 45 and 30 minutes with drives of 12 and 8 minutes.
estimatedTotalTime = 20 + 12 + 45 + 8 + 30 = 115 minutes.
`

const promptOutputFormat = `Respond with a single JSON object and nothing else:
{
  "optimizedOrder": [/* every visit number from the list above, 1-based, in driving order */],
  "estimatedTotalDistance": /* total driving distance in miles, float */,
  "estimatedTotalTime": /* elapsed time in minutes covering travel plus service, float */,
  "efficiency": /* 0-100 score for how efficient the route is */,
  "feasibleRoute": /* true if every visit fits its window, false otherwise */,
  "reasoning": /* one short paragraph explaining the order; name any excluded visits */
}
`
