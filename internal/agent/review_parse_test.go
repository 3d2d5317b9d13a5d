package agent

import "testing"

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		valid    bool
		deadline string
	}{
		{
			name:     "strict json",
			input:    `{"valid": true, "deadline": "2 semanas"}`,
			wantOK:   true,
			valid:    true,
			deadline: "2 semanas",
		},
		{
			name:     "strict json invalid verdict",
			input:    `{"valid": false, "deadline": "1 mes"}`,
			wantOK:   true,
			valid:    false,
			deadline: "1 mes",
		},
		{
			name:     "embedded in code fence",
			input:    "```json\n{\"valid\": true, \"deadline\": \"3 meses\"}\n```",
			wantOK:   true,
			valid:    true,
			deadline: "3 meses",
		},
		{
			name:     "embedded with preamble",
			input:    `Aquí está el resultado: {"valid": true, "deadline": "1 mes"} espero que sirva`,
			wantOK:   true,
			valid:    true,
			deadline: "1 mes",
		},
		{
			name:     "key value scrape from broken json",
			input:    `{valid: true, deadline: '2 meses'`,
			wantOK:   true,
			valid:    true,
			deadline: "2 meses",
		},
		{
			name:     "key value scrape false",
			input:    `valid=false deadline=1 mes`,
			wantOK:   true,
			valid:    false,
			deadline: "1 mes",
		},
		{
			name:   "prose without verdict fails closed",
			input:  "El objetivo parece razonable y técnico.",
			wantOK: false,
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
		{
			name:   "json without valid field fails closed",
			input:  `{"deadline": "2 semanas"}`,
			wantOK: false,
		},
		{
			name:     "missing deadline gets default",
			input:    `{"valid": true}`,
			wantOK:   true,
			valid:    true,
			deadline: "1 mes",
		},
		{
			name:     "whitespace deadline gets default",
			input:    `{"valid": true, "deadline": "  "}`,
			wantOK:   true,
			valid:    true,
			deadline: "1 mes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := parseVerdict(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseVerdict(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if v.Valid != tt.valid {
				t.Errorf("valid = %v, want %v", v.Valid, tt.valid)
			}
			if v.Deadline != tt.deadline {
				t.Errorf("deadline = %q, want %q", v.Deadline, tt.deadline)
			}
		})
	}
}
