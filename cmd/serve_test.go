package cmd

import "testing"

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	serve, _, err := cmd.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("Failed to find serve command: %v", err)
	}

	if serve.Flags().Lookup("host") == nil {
		t.Error("host flag not registered")
	}
	if serve.Flags().Lookup("port") == nil {
		t.Error("port flag not registered")
	}
}

func TestExportCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	export, _, err := cmd.Find([]string{"export"})
	if err != nil {
		t.Fatalf("Failed to find export command: %v", err)
	}

	if export.Flags().Lookup("format") == nil {
		t.Error("format flag not registered")
	}
	if export.Flags().Lookup("output") == nil {
		t.Error("output flag not registered")
	}
}
