package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "root command without args shows help",
			args:           []string{},
			wantErr:        false,
			expectedOutput: "Annotator API",
		},
		{
			name:           "root command with --help",
			args:           []string{"--help"},
			wantErr:        false,
			expectedOutput: "Available Commands:",
		},
		{
			name:    "root command with invalid flag",
			args:    []string{"--invalid-flag"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.expectedOutput != "" && !strings.Contains(buf.String(), tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, buf.String())
			}
		})
	}
}

func TestLogFlags(t *testing.T) {
	cmd := NewRootCmd()

	logLevel := cmd.PersistentFlags().Lookup("log-level")
	if logLevel == nil {
		t.Fatal("log-level flag not registered")
	}
	if logLevel.DefValue != "info" {
		t.Errorf("log-level default = %q, want %q", logLevel.DefValue, "info")
	}

	jsonLogs := cmd.PersistentFlags().Lookup("json-logs")
	if jsonLogs == nil {
		t.Fatal("json-logs flag not registered")
	}
	if jsonLogs.DefValue != "false" {
		t.Errorf("json-logs default = %q, want %q", jsonLogs.DefValue, "false")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"serve", "export", "import", "migrate", "version"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Errorf("Subcommand %q not registered", name)
		}
	}
}
