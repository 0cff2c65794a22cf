// Package compare reconciles the deterministic analyzer's bounds with
// an LLM judgment of the same source. The comparison is purely
// advisory: a disagreement flags the result for review, it never
// changes it.
package compare

import "strings"

// Bounds is the minimal view of a complexity result both sides share.
// Empty fields mean the bound is absent (e.g. no tight bound).
type Bounds struct {
	O     string
	Omega string
	Theta string
}

// Detail records one bound's pairing.
type Detail struct {
	Bound         string `json:"bound"`
	Deterministic string `json:"deterministic"`
	LLM           string `json:"llm"`
	Match         bool   `json:"match"`
}

// Report summarizes agreement across the three bounds.
type Report struct {
	AgreementScore float64  `json:"agreement_score"` // Percentage, 0..100
	AllMatch       bool     `json:"all_match"`
	Details        []Detail `json:"details"`
	Explanation    string   `json:"llm_explanation,omitempty"`
}

// Compare normalizes and pairs both sides bound by bound.
func Compare(det, llm Bounds, explanation string) Report {
	pairs := []struct {
		name     string
		det, llm string
	}{
		{"O", det.O, llm.O},
		{"Omega", det.Omega, llm.Omega},
		{"Theta", det.Theta, llm.Theta},
	}

	r := Report{Explanation: explanation}
	matches := 0
	for _, p := range pairs {
		d := Normalize(p.det)
		l := Normalize(p.llm)
		match := d == l
		if match {
			matches++
		}
		r.Details = append(r.Details, Detail{Bound: p.name, Deterministic: d, LLM: l, Match: match})
	}
	r.AgreementScore = float64(matches) / float64(len(pairs)) * 100
	r.AllMatch = matches == len(pairs)
	return r
}

// Normalize reduces a complexity label to a canonical comparable form:
// lowercase, no whitespace, no wrapping notation. "O(N Log N)" and
// "n log n" both normalize to "nlogn". Absent bounds normalize to
// "n/a".
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "n/a"
	}
	for _, prefix := range []string{"o(", "omega(", "theta(", "ω(", "θ("} {
		if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, ")") {
			s = s[len(prefix) : len(s)-1]
			break
		}
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "*", "")
	if s == "" {
		return "n/a"
	}
	return s
}
