package services

import (
	"encoding/json"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"petcare-route-service/internal/domain"
)

// Defaults substituted for numeric fields the model left out of an
// otherwise usable structured reply. The optimizer never blocks on a
// partially populated reply.
const (
	defaultDistanceMiles = 25.0
	defaultTimeMinutes   = 90.0
	defaultEfficiency    = 0.85

	genericReasoning = "Visits ordered for an efficient day of pet care."

	maxReasoningLen = 200
)

// Interpretation is the resolved outcome of one model reply: a full
// ordering over the input visits plus route metrics.
type Interpretation struct {
	Visits             []domain.Visit
	TotalDistanceMiles float64
	TotalTimeSeconds   float64
	Efficiency         float64
	Feasible           bool
	Reasoning          string
}

// InterpretResponse resolves the raw model reply into an ordering and
// metrics. It is total: it degrades through three tiers and always
// produces a usable Interpretation.
//
// Tier 1 decodes a JSON object found in the text and applies its
// optimizedOrder when it accounts for the input visits. Tier 2 scans the
// text for pet or client name mentions line by line. Tier 3 sorts by
// window start and cannot fail.
func InterpretResponse(raw string, visits []domain.Visit) Interpretation {
	if in, ok := parseStructured(raw, visits); ok {
		return in
	}

	ordered, ok := orderByNameMentions(raw, visits)
	if !ok {
		ordered = orderByStartTime(visits)
	}

	reasoning := extractReasoning(raw)
	if reasoning == "" {
		reasoning = genericReasoning
	}

	return Interpretation{
		Visits:             ordered,
		TotalDistanceMiles: defaultDistanceMiles,
		TotalTimeSeconds:   defaultTimeMinutes * 60,
		Efficiency:         defaultEfficiency,
		Feasible:           true,
		Reasoning:          normalizeReasoning(reasoning),
	}
}

// parseStructured attempts the tier-1 structured parse.
//
// The ordering is accepted only with full coverage of the input visits;
// a partial ordering is applied solely when the reply itself declares
// the route infeasible, in which case the result carries the strict
// subset and the reasoning names the excluded visits.
func parseStructured(raw string, visits []domain.Visit) (Interpretation, bool) {
	doc, ok := decodeFirstJSONObject(raw)
	if !ok {
		return Interpretation{}, false
	}

	rawOrder, ok := doc["optimizedOrder"].([]any)
	if !ok {
		return Interpretation{}, false
	}

	used := make(map[int]bool, len(visits))
	ordered := make([]domain.Visit, 0, len(visits))
	for _, entry := range rawOrder {
		n, ok := asFloat(entry)
		if !ok {
			return Interpretation{}, false
		}
		idx := int(n) - 1 // reply indices are 1-based
		if idx < 0 || idx >= len(visits) || used[idx] {
			continue
		}
		used[idx] = true
		ordered = append(ordered, visits[idx])
	}

	feasible := true
	if b, ok := doc["feasibleRoute"].(bool); ok {
		feasible = b
	}

	if len(ordered) == 0 {
		return Interpretation{}, false
	}
	if len(ordered) < len(visits) && feasible {
		// Never partially apply an ordering that silently drops visits.
		return Interpretation{}, false
	}

	distance := defaultDistanceMiles
	if n, ok := asFloat(doc["estimatedTotalDistance"]); ok {
		distance = n
	}
	minutes := defaultTimeMinutes
	if n, ok := asFloat(doc["estimatedTotalTime"]); ok {
		minutes = n
	}
	efficiency := defaultEfficiency
	if n, ok := asFloat(doc["efficiency"]); ok {
		efficiency = clamp01(n / 100)
	}

	reasoning, _ := doc["reasoning"].(string)
	if reasoning == "" {
		reasoning = extractReasoning(raw)
	}
	if reasoning == "" {
		reasoning = genericReasoning
	}
	reasoning = normalizeReasoning(reasoning)

	if len(ordered) < len(visits) {
		reasoning = appendExcluded(reasoning, visits, used)
	}

	return Interpretation{
		Visits:             ordered,
		TotalDistanceMiles: distance,
		TotalTimeSeconds:   minutes * 60,
		Efficiency:         efficiency,
		Feasible:           feasible,
		Reasoning:          reasoning,
	}, true
}

// decodeFirstJSONObject scans the reply for a JSON object and decodes the
// first candidate that parses. Candidates are tried in order: a fenced
// block tagged json, any fenced block, then a bare {...} span.
func decodeFirstJSONObject(raw string) (map[string]any, bool) {
	for _, candidate := range jsonCandidates(raw) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(candidate), &doc); err == nil {
			return doc, true
		}
	}
	return nil, false
}

func jsonCandidates(raw string) []string {
	var out []string

	if c, ok := fencedBlock(raw, "```json"); ok {
		out = append(out, c)
	}
	if c, ok := fencedBlock(raw, "```"); ok {
		out = append(out, c)
	}
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			out = append(out, raw[start:end+1])
		}
	}

	return out
}

func fencedBlock(raw, opener string) (string, bool) {
	start := strings.Index(raw, opener)
	if start < 0 {
		return "", false
	}
	body := raw[start+len(opener):]
	if nl := strings.Index(body, "\n"); nl >= 0 {
		body = body[nl+1:]
	}
	end := strings.Index(body, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(body[:end]), true
}

// Header words that mark a line as narrative rather than a visit mention.
var headerWords = []string{"optimal", "route", "schedule"}

// orderByNameMentions performs the tier-2 heuristic text parse: each
// remaining line places at most one not-yet-placed visit by
// case-insensitive pet-or-client-name mention. Unmatched visits are
// appended afterwards in their original relative order.
func orderByNameMentions(raw string, visits []domain.Visit) ([]domain.Visit, bool) {
	placed := make([]bool, len(visits))
	ordered := make([]domain.Visit, 0, len(visits))
	matched := 0

	for _, line := range strings.Split(raw, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" || containsAny(line, headerWords) {
			continue
		}

		for i, v := range visits {
			if placed[i] {
				continue
			}
			// Empty names must not match: Contains(line, "") is true
			// for every line.
			pet := strings.ToLower(v.PetName)
			client := strings.ToLower(v.ClientName)
			if (pet != "" && strings.Contains(line, pet)) ||
				(client != "" && strings.Contains(line, client)) {
				placed[i] = true
				ordered = append(ordered, v)
				matched++
				break // first match wins per line
			}
		}
	}

	if matched == 0 {
		return nil, false
	}

	for i, v := range visits {
		if !placed[i] {
			ordered = append(ordered, v)
		}
	}

	// Should always hold by construction; verified defensively.
	if len(ordered) != len(visits) {
		return nil, false
	}

	return ordered, true
}

// orderByStartTime is the tier-3 unconditional last resort.
func orderByStartTime(visits []domain.Visit) []domain.Visit {
	ordered := slices.Clone(visits)
	slices.SortStableFunc(ordered, func(a, b domain.Visit) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return ordered
}

// Lines containing any of these words start the extracted reasoning text.
var reasoningMarkers = []string{"reason", "explanation", "analysis", "optimized"}

// extractReasoning pulls explanatory text out of a free-text reply:
// everything from the first line mentioning a reasoning marker to the end.
func extractReasoning(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if containsAny(strings.ToLower(line), reasoningMarkers) {
			return strings.TrimSpace(strings.Join(lines[i:], " "))
		}
	}
	return ""
}

// normalizeReasoning collapses literal newline escapes and doubled
// spaces, and truncates long text at a whitespace boundary.
func normalizeReasoning(s string) string {
	s = strings.ReplaceAll(s, `\n`, " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.TrimSpace(s)

	if len(s) <= maxReasoningLen {
		return s
	}

	// Back off to a rune boundary before scanning for whitespace so a
	// multibyte rune straddling the limit never yields invalid UTF-8.
	n := maxReasoningLen - 3
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	cut := s[:n]
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func appendExcluded(reasoning string, visits []domain.Visit, used map[int]bool) string {
	var names []string
	for i, v := range visits {
		if !used[i] {
			names = append(names, v.PetName)
		}
	}
	if len(names) == 0 {
		return reasoning
	}
	return strings.TrimSpace(reasoning + " Unable to schedule: " + strings.Join(names, ", ") + ".")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
