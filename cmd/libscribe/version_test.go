package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	for _, want := range []string{"libscribe " + Version, "Git Commit:", "OS/Arch:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"build", "completion", "fetch", "index", "lint", "resolve", "search", "version", "watch"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	var out bytes.Buffer
	completionCmd.SetOut(&out)
	defer completionCmd.SetOut(nil)

	if err := completionCmd.RunE(completionCmd, []string{"bash"}); err != nil {
		t.Fatalf("completion bash error = %v", err)
	}
	if !strings.Contains(out.String(), "libscribe") {
		t.Error("bash completion does not mention libscribe")
	}
	if err := completionCmd.RunE(completionCmd, []string{"tcsh"}); err == nil {
		t.Error("completion tcsh succeeded")
	}
}
