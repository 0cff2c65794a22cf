package compare

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"O(n log n)", "nlogn"},
		{"o(N Log N)", "nlogn"},
		{"Theta(n^2)", "n^2"},
		{"Θ(n^2)", "n^2"},
		{"Omega(1)", "1"},
		{"Ω(1)", "1"},
		{"n log n", "nlogn"},
		{"O(n * log n)", "nlogn"},
		{"", "n/a"},
		{"  ", "n/a"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompareAllMatch(t *testing.T) {
	det := Bounds{O: "n log n", Omega: "n log n", Theta: "n log n"}
	llm := Bounds{O: "O(n log n)", Omega: "Omega(n log n)", Theta: "Theta(n log n)"}

	r := Compare(det, llm, "divide and conquer")
	if !r.AllMatch {
		t.Errorf("AllMatch = false, want true: %+v", r.Details)
	}
	if r.AgreementScore != 100 {
		t.Errorf("AgreementScore = %v, want 100", r.AgreementScore)
	}
	if r.Explanation != "divide and conquer" {
		t.Errorf("Explanation = %q", r.Explanation)
	}
}

func TestComparePartial(t *testing.T) {
	det := Bounds{O: "n^2", Omega: "n"}
	llm := Bounds{O: "O(n^2)", Omega: "Omega(1)"}

	r := Compare(det, llm, "")
	if r.AllMatch {
		t.Error("AllMatch = true, want false")
	}
	// O matches, Omega differs, both Theta absent and therefore match.
	want := float64(2) / 3 * 100
	if r.AgreementScore != want {
		t.Errorf("AgreementScore = %v, want %v", r.AgreementScore, want)
	}
	if len(r.Details) != 3 {
		t.Fatalf("len(Details) = %d, want 3", len(r.Details))
	}
	if !r.Details[0].Match || r.Details[1].Match || !r.Details[2].Match {
		t.Errorf("match pattern wrong: %+v", r.Details)
	}
}
