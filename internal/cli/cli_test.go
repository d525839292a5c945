package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/oadl/heatsheet/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to html", "", []string{pipeline.FormatHTML}},
		{"single", "json", []string{"json"}},
		{"comma separated", "html,text,json", []string{"html", "text", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDrawBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derive from input", "", "meet.json", "meet"},
		{"stdin input", "", "-", "heatsheet"},
		{"output with format extension", "out.html", "meet.json", "out"},
		{"output with text extension", "out.txt", "meet.json", "out"},
		{"output without extension", "results", "meet.json", "results"},
		{"output with unrelated extension", "out.bak", "meet.json", "out.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := drawBasePath(tt.output, tt.input); got != tt.want {
				t.Errorf("drawBasePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	if got := extension(pipeline.FormatText); got != "txt" {
		t.Errorf("extension(text) = %q, want txt", got)
	}
	if got := extension(pipeline.FormatHTML); got != "html" {
		t.Errorf("extension(html) = %q, want html", got)
	}
}

func TestRootCommandStructure(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != "heatsheet" {
		t.Errorf("root.Use = %q, want heatsheet", root.Use)
	}

	want := map[string]bool{"draw": false, "preview": false, "serve": false, "cache": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
