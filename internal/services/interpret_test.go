package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"petcare-route-service/internal/domain"
)

func threeVisits() []domain.Visit {
	return []domain.Visit{
		testVisit("Rex", "Dana", 9, 0, 90, 30),
		testVisit("Bella", "Sam", 11, 30, 45, 45),
		testVisit("Milo", "Pat", 14, 0, 60, 30),
	}
}

func assertOrder(t *testing.T, got []domain.Visit, pets ...string) {
	t.Helper()
	if len(got) != len(pets) {
		t.Fatalf("got %d visits, want %d", len(got), len(pets))
	}
	for i, pet := range pets {
		if got[i].PetName != pet {
			t.Errorf("position %d: got %q, want %q", i, got[i].PetName, pet)
		}
	}
}

func TestInterpretStructuredFencedJSON(t *testing.T) {
	raw := "Here is the plan.\n```json\n" +
		`{"optimizedOrder":[3,1,2],"estimatedTotalDistance":18.5,"estimatedTotalTime":140,"efficiency":92,"feasibleRoute":true,"reasoning":"Loop south to north."}` +
		"\n```\nDone."

	in := InterpretResponse(raw, threeVisits())

	assertOrder(t, in.Visits, "Milo", "Rex", "Bella")
	if in.TotalDistanceMiles != 18.5 {
		t.Errorf("distance = %v, want 18.5", in.TotalDistanceMiles)
	}
	if in.TotalTimeSeconds != 140*60 {
		t.Errorf("time = %v, want %v", in.TotalTimeSeconds, 140*60)
	}
	if in.Efficiency != 0.92 {
		t.Errorf("efficiency = %v, want 0.92", in.Efficiency)
	}
	if !in.Feasible {
		t.Error("feasible = false, want true")
	}
	if in.Reasoning != "Loop south to north." {
		t.Errorf("reasoning = %q", in.Reasoning)
	}
}

func TestInterpretStructuredBareJSON(t *testing.T) {
	raw := `The best order is {"optimizedOrder":[2,3,1]} as shown.`

	in := InterpretResponse(raw, threeVisits())

	assertOrder(t, in.Visits, "Bella", "Milo", "Rex")
}

func TestInterpretStructuredDefaultsForMissingMetrics(t *testing.T) {
	raw := `{"optimizedOrder":[1,2,3]}`

	in := InterpretResponse(raw, threeVisits())

	if in.TotalDistanceMiles != 25.0 {
		t.Errorf("distance default = %v, want 25.0", in.TotalDistanceMiles)
	}
	if in.TotalTimeSeconds != 90*60 {
		t.Errorf("time default = %v, want %v", in.TotalTimeSeconds, 90*60)
	}
	if in.Efficiency != 0.85 {
		t.Errorf("efficiency default = %v, want 0.85", in.Efficiency)
	}
	if !in.Feasible {
		t.Error("feasible default = false, want true")
	}
}

func TestInterpretStructuredIgnoresOutOfRangeIndices(t *testing.T) {
	raw := `{"optimizedOrder":[0,2,1,3,9]}`

	in := InterpretResponse(raw, threeVisits())

	// 0 and 9 are out of range for 1-based indexing over three visits.
	assertOrder(t, in.Visits, "Bella", "Rex", "Milo")
}

func TestInterpretStructuredRejectsPartialCoverage(t *testing.T) {
	// Index 3 is missing and nothing in the text names a visit, so the
	// interpreter must fall through to the time-based ordering rather
	// than drop Milo silently.
	raw := `{"optimizedOrder":[2,1],"estimatedTotalDistance":5}`

	in := InterpretResponse(raw, threeVisits())

	assertOrder(t, in.Visits, "Rex", "Bella", "Milo")
	if in.TotalDistanceMiles != 25.0 {
		t.Errorf("rejected tier 1 must not leak its metrics, distance = %v", in.TotalDistanceMiles)
	}
}

func TestInterpretStructuredRejectsDuplicateIndices(t *testing.T) {
	raw := `{"optimizedOrder":[1,1,2]}`

	in := InterpretResponse(raw, threeVisits())

	// Duplicates cannot cover all visits; expect the time-based order.
	assertOrder(t, in.Visits, "Rex", "Bella", "Milo")
}

func TestInterpretStructuredInfeasibleSubset(t *testing.T) {
	raw := `{"optimizedOrder":[2,1],"feasibleRoute":false,"reasoning":"Milo's window cannot be reached in time."}`

	in := InterpretResponse(raw, threeVisits())

	assertOrder(t, in.Visits, "Bella", "Rex")
	if in.Feasible {
		t.Error("feasible = true, want false")
	}
	if !strings.Contains(in.Reasoning, "Milo") {
		t.Errorf("reasoning must name the excluded visit, got %q", in.Reasoning)
	}
}

func TestInterpretNameScan(t *testing.T) {
	raw := strings.Join([]string{
		"Optimal route for the day:", // header line, skipped even though it could match
		"",
		"First go see Milo in the north valley.",
		"Then swing by Dana's place.", // matches Rex via client name
		"Finish with Bella before dinner.",
	}, "\n")

	in := InterpretResponse(raw, threeVisits())

	assertOrder(t, in.Visits, "Milo", "Rex", "Bella")
}

func TestInterpretNameScanAppendsUnmatched(t *testing.T) {
	raw := "Start with Bella.\nNothing else to say."

	in := InterpretResponse(raw, threeVisits())

	// Bella matched; Rex and Milo follow in their original relative order.
	assertOrder(t, in.Visits, "Bella", "Rex", "Milo")
}

func TestInterpretNameScanIgnoresEmptyNames(t *testing.T) {
	visits := []domain.Visit{
		testVisit("Milo", "Pat", 14, 0, 60, 30),
		testVisit("Rex", "", 9, 0, 90, 30), // client name is optional
		testVisit("Bella", "Sam", 11, 30, 45, 45),
	}

	// The first content line names nobody; an empty client name must
	// not claim it.
	raw := "Head out early to beat traffic.\nSee Bella first."

	in := InterpretResponse(raw, visits)

	assertOrder(t, in.Visits, "Bella", "Milo", "Rex")
}

func TestInterpretFallsThroughToTimeOrder(t *testing.T) {
	visits := []domain.Visit{
		testVisit("Milo", "Pat", 14, 0, 60, 30),
		testVisit("Rex", "Dana", 9, 0, 90, 30),
		testVisit("Bella", "Sam", 11, 30, 45, 45),
	}

	// No JSON, no recognizable names anywhere.
	in := InterpretResponse("I could not figure this out at all.", visits)

	assertOrder(t, in.Visits, "Rex", "Bella", "Milo")
	if in.Reasoning == "" {
		t.Error("reasoning must never be empty")
	}
}

func TestInterpretReasoningExtractedFromText(t *testing.T) {
	raw := "Start with Bella.\nExplanation: the morning cluster is tight\nso we go north first."

	in := InterpretResponse(raw, threeVisits())

	if !strings.Contains(in.Reasoning, "morning cluster") {
		t.Errorf("reasoning not extracted, got %q", in.Reasoning)
	}
}

func TestNormalizeReasoning(t *testing.T) {
	got := normalizeReasoning(`first\nsecond  third`)
	if got != "first second third" {
		t.Errorf("normalize = %q", got)
	}

	long := strings.Repeat("word ", 60) // 300 chars
	got = normalizeReasoning(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("long reasoning should be truncated with ellipsis, got %q", got)
	}
	if len(got) > 200 {
		t.Errorf("truncated reasoning length = %d, want <= 200", len(got))
	}
	if strings.Contains(strings.TrimSuffix(got, "..."), "  ") {
		t.Errorf("doubled spaces survived: %q", got)
	}
}

func TestNormalizeReasoningTruncatesOnRuneBoundary(t *testing.T) {
	// No whitespace anywhere, so the cut lands mid-text; every rune is
	// two bytes, putting a rune straddle right at the limit.
	got := normalizeReasoning(strings.Repeat("é", 150))

	if !utf8.ValidString(got) {
		t.Errorf("truncation produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("long reasoning should be truncated with ellipsis, got %q", got)
	}
	if len(got) > 200 {
		t.Errorf("truncated reasoning length = %d, want <= 200", len(got))
	}
}
