package main

import (
	"testing"
)

func TestMdlCommand(t *testing.T) {
	tests := []struct {
		name        string
		constant    string
		strict      bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "map round trip",
			constant:    `{1:"a",2:"b"}`,
			wantContain: []string{`{1:"a",2:"b"}`},
		},
		{
			name:        "hex byte string",
			constant:    `x"01 02 03"`,
			wantContain: []string{`x"`},
		},
		{
			name:        "boolean keyword",
			constant:    "TRUE",
			wantContain: []string{"TRUE"},
		},
		{
			name:     "unterminated map",
			constant: `{1:"a"`,
			wantErr:  true,
		},
		{
			name:     "garbage",
			constant: "]]]",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			mdlStrict = tt.strict

			output, err := captureOutput(t, func() error {
				return runMdl([]string{tt.constant})
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
		})
	}
}
