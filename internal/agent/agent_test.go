package agent

import (
	"reflect"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"claude", KindClaude, false},
		{" Codex ", KindCodex, false},
		{"shell", KindTerminal, false},
		{"", KindTerminal, false},
		{"cursor", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseKind(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArgvAgentFlags(t *testing.T) {
	tests := []struct {
		name     string
		launch   Launch
		wantCmd  string
		wantArgs []string
	}{
		{
			name:    "claude plain",
			launch:  Launch{Kind: KindClaude},
			wantCmd: "claude",
		},
		{
			name:     "claude resume dangerous",
			launch:   Launch{Kind: KindClaude, Resume: true, SkipPermissions: true},
			wantCmd:  "claude",
			wantArgs: []string{"--dangerously-skip-permissions", "--continue"},
		},
		{
			name:     "gemini yolo",
			launch:   Launch{Kind: KindGemini, SkipPermissions: true},
			wantCmd:  "gemini",
			wantArgs: []string{"--yolo"},
		},
		{
			name:     "codex resume subcommand",
			launch:   Launch{Kind: KindCodex, Resume: true},
			wantCmd:  "codex",
			wantArgs: []string{"resume", "--last"},
		},
		{
			name:     "grok permission mode",
			launch:   Launch{Kind: KindGrok, SkipPermissions: true},
			wantCmd:  "grok",
			wantArgs: []string{"--permission-mode", "full"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := tt.launch.Argv()
			if err != nil {
				t.Fatalf("Argv() error: %v", err)
			}
			if cmd != tt.wantCmd {
				t.Fatalf("cmd = %q, want %q", cmd, tt.wantCmd)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestArgvTerminalStartCommand(t *testing.T) {
	cmd, args, err := Launch{Kind: KindTerminal, StartCommand: `htop -d 10`}.Argv()
	if err != nil {
		t.Fatalf("Argv() error: %v", err)
	}
	if cmd != "htop" || !reflect.DeepEqual(args, []string{"-d", "10"}) {
		t.Fatalf("got %q %v", cmd, args)
	}
}

func TestArgvTerminalQuoting(t *testing.T) {
	cmd, args, err := Launch{Kind: KindTerminal, StartCommand: `sh -c 'echo "hello world"'`}.Argv()
	if err != nil {
		t.Fatalf("Argv() error: %v", err)
	}
	if cmd != "sh" || !reflect.DeepEqual(args, []string{"-c", `echo "hello world"`}) {
		t.Fatalf("got %q %v", cmd, args)
	}
}

func TestArgvTerminalBadQuoting(t *testing.T) {
	if _, _, err := (Launch{Kind: KindTerminal, StartCommand: `echo "unterminated`}).Argv(); err == nil {
		t.Fatalf("expected error for unterminated quote")
	}
}

func TestArgvTerminalDefaultShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	cmd, args, err := Launch{Kind: KindTerminal}.Argv()
	if err != nil {
		t.Fatalf("Argv() error: %v", err)
	}
	if cmd != "/bin/sh" || len(args) != 0 {
		t.Fatalf("got %q %v", cmd, args)
	}
}
