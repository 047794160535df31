package main

import (
	"testing"
)

func TestRegexCommand(t *testing.T) {
	tests := []struct {
		name           string
		pattern        string
		input          string
		ignoreCase     bool
		replace        string
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "address with groups",
			pattern:     `^[\t ]*(.*)[\t ]*\((.*)\)`,
			input:       "example.com!david(David)",
			wantContain: []string{`group 1: "example.com!david"`, `group 2: "David"`},
		},
		{
			name:        "case insensitive",
			pattern:     "st[0-9]+",
			input:       "Read ST17 now",
			ignoreCase:  true,
			wantContain: []string{`match: "ST17"`},
		},
		{
			name:        "replace template",
			pattern:     `(\<[a-z]+\>) (\<[a-z]+\>)`,
			input:       "hello world",
			replace:     `\2 \1`,
			wantContain: []string{"replace: world hello"},
		},
		{
			name:           "no match",
			pattern:        "xyz",
			input:          "abc",
			wantContain:    []string{"no match"},
			wantNotContain: []string{"group"},
		},
		{
			name:    "bad pattern",
			pattern: "(abc",
			input:   "abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			regexIgnoreCase = tt.ignoreCase
			regexReplace = tt.replace

			output, err := captureOutput(t, func() error {
				return runRegex([]string{tt.pattern, tt.input})
			})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got output: %s", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}
