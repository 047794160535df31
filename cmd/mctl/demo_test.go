package main

import (
	"testing"
)

func TestDemoCommand(t *testing.T) {
	// Reset flags
	quiet = false
	verbose = false
	demoKeyHex = "000102030405060708090A0B0C0D0E0F"

	output, err := captureOutput(t, runDemo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, output, []string{
		`record: {"ST1",17,x"12 34"}`,
		`restored: {"ST1",17,x"12 34"}`,
		"serial (BCD): 1234",
		"model (RAD40):",
		"frame MAC:",
	})
}

func TestDemoRejectsBadKey(t *testing.T) {
	quiet = true
	demoKeyHex = "0102"
	defer func() { demoKeyHex = "000102030405060708090A0B0C0D0E0F" }()

	if _, err := captureOutput(t, runDemo); err == nil {
		t.Fatal("expected error for short key")
	}
}
