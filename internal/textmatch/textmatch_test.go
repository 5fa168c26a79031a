package textmatch

import "testing"

func TestClosest(t *testing.T) {
	candidates := []string{"forest", "plains", "desert", "snow", "swamp"}

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"exact", "forest", "forest", true},
		{"typo", "forrest", "forest", true},
		{"case", "SWAMP", "swamp", true},
		{"far away", "volcanic-wasteland", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.input, candidates, 3)
			if ok != tt.wantOK {
				t.Fatalf("Closest(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Closest(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSuggestion(t *testing.T) {
	if got := Suggestion("snwo", []string{"snow"}); got != `, did you mean "snow"?` {
		t.Errorf("Expected snow suggestion, got %q", got)
	}
	if got := Suggestion("zzzzzzzz", []string{"snow"}); got != "" {
		t.Errorf("Expected no suggestion, got %q", got)
	}
}
