package main

import (
	"testing"
)

func TestParseQuantities(t *testing.T) {
	quantities, err := parseQuantities([]string{"M_NUOC=2", "AM_KDR=1"})
	if err != nil {
		t.Fatalf("parseQuantities returned error: %v", err)
	}
	if quantities["M_NUOC"] != 2 || quantities["AM_KDR"] != 1 {
		t.Fatalf("unexpected quantities %v", quantities)
	}
}

func TestParseQuantitiesRejectsMalformedPairs(t *testing.T) {
	for _, input := range []string{"M_NUOC", "=2", "M_NUOC=two", "M_NUOC=-1"} {
		if _, err := parseQuantities([]string{input}); err == nil {
			t.Fatalf("expected an error for %q", input)
		}
	}
}

func TestParseQuantitiesEmpty(t *testing.T) {
	quantities, err := parseQuantities(nil)
	if err != nil {
		t.Fatalf("parseQuantities returned error: %v", err)
	}
	if quantities != nil {
		t.Fatalf("expected nil map, got %v", quantities)
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"tasks", "start", "complete", "inventory", "config"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected %q command registered", name)
		}
	}
}
