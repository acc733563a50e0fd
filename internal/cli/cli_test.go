package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const asciiSource = "project/\n├── src/\n│   └── main.go\n└── README.md"

const markdownSource = "---\ntitle: Layout\n---\n# Layout\n\n```tree\n" + asciiSource + "\n```\n\n" +
	"```tree json\n[{\"name\": \"docs\", \"type\": \"directory\"}]\n```\n"

// runCLI executes the root command with a private config file and cache dir.
func runCLI(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TREEVIEW_CACHE_DIR", filepath.Join(t.TempDir(), "cache"))

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.toml")
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		contains []string
		wantErr  bool
	}{
		{
			name:     "ascii to json",
			stdin:    asciiSource,
			args:     []string{"parse"},
			contains: []string{`"name": "project/"`, `"name": "main.go"`, `"type": "directory"`},
		},
		{
			name:     "ascii round trip",
			stdin:    asciiSource,
			args:     []string{"parse", "--to", "ascii"},
			contains: []string{asciiSource + "\n"},
		},
		{
			name:     "json to ascii",
			stdin:    `[{"name": "app", "type": "directory", "contents": [{"name": "main.go", "type": "file"}]}]`,
			args:     []string{"parse", "--to", "ascii"},
			contains: []string{"app\n└── main.go\n"},
		},
		{
			name:     "ignore",
			stdin:    asciiSource,
			args:     []string{"parse", "--to", "ascii", "--ignore", "*.md"},
			contains: []string{"project/\n└── src/\n    └── main.go\n"},
		},
		{
			name:    "explicit json format on ascii input",
			stdin:   asciiSource,
			args:    []string{"parse", "--format", "json"},
			wantErr: true,
		},
		{
			name:    "bad target",
			stdin:   asciiSource,
			args:    []string{"parse", "--to", "yaml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tempConfig(t), tt.stdin, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestParseCommandOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "layout.txt")
	out := filepath.Join(dir, "layout.json")
	if err := os.WriteFile(in, []byte(asciiSource), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, tempConfig(t), "", "parse", in, "-o", out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"name": "README.md"`) {
		t.Errorf("output file = %s", data)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "layout.txt")
	if err := os.WriteFile(in, []byte(asciiSource), 0o644); err != nil {
		t.Fatal(err)
	}

	base := filepath.Join(dir, "out", "layout")
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, tempConfig(t), "", "render", in, "-t", "html,ascii,dot", "-o", base, "--title", "Demo", "--collapsed"); err != nil {
		t.Fatalf("render: %v", err)
	}

	checks := map[string]string{
		".html": "<title>Demo</title>",
		".txt":  "└── README.md",
		".dot":  "digraph",
	}
	for ext, want := range checks {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Errorf("missing %s: %v", ext, err)
			continue
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("%s does not contain %q", ext, want)
		}
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "page.htm")

	if _, err := runCLI(t, tempConfig(t), asciiSource, "render", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("single output should be written to -o as given: %v", err)
	}
}

func TestRenderCommandMarkdown(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "README.md")
	if err := os.WriteFile(in, []byte(markdownSource), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, tempConfig(t), "", "render", in, "-t", "html,json"); err != nil {
		t.Fatalf("render: %v", err)
	}

	base := filepath.Join(dir, "README")
	page, err := os.ReadFile(base + ".html")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<title>Layout</title>", "Block 1 (line 6)", "Block 2", "docs"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("page missing %q", want)
		}
	}
	for _, name := range []string{base + "_1.json", base + "_2.json"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("missing per-block output: %v", err)
		}
	}
}

func TestRenderCommandMarkdownWithoutBlocks(t *testing.T) {
	_, err := runCLI(t, tempConfig(t), "# nothing here\n", "render", "--markdown", "-o", filepath.Join(t.TempDir(), "x"))
	if err == nil {
		t.Error("expected error for markdown without tree blocks")
	}
}

func TestPathsCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"paths"}, "project/\nproject/README.md\nproject/src/\nproject/src/main.go\n"},
		{[]string{"paths", "--prefix", "project/src"}, "project/src/\nproject/src/main.go\n"},
		{[]string{"paths", "--files"}, "project/README.md\nproject/src/main.go\n"},
		{[]string{"paths", "--dirs"}, "project/\nproject/src/\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := runCLI(t, tempConfig(t), asciiSource, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestConfigSetShow(t *testing.T) {
	cfgPath := tempConfig(t)

	if _, err := runCLI(t, cfgPath, "", "config", "set", "collapsed", "true"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := runCLI(t, cfgPath, "", "config", "show", "collapsed")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "true" {
		t.Errorf("config show collapsed = %q, want true", out)
	}

	if _, err := runCLI(t, cfgPath, "", "config", "set", "outputs", "png"); err == nil {
		t.Error("setting an invalid output should fail")
	}
	if _, err := runCLI(t, cfgPath, "", "config", "set", "nope", "1"); err == nil {
		t.Error("setting an unknown key should fail")
	}

	out, err = runCLI(t, cfgPath, "", "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != cfgPath {
		t.Errorf("config path = %q, want %q", out, cfgPath)
	}
}

func TestCachePath(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	want := filepath.Join(t.TempDir(), "cache")
	t.Setenv("TREEVIEW_CACHE_DIR", want)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", tempConfig(t), "cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != want {
		t.Errorf("cache path = %q, want %q", out.String(), want)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "layout.txt", "layout"},
		{"", "docs/README.md", "docs/README"},
		{"", "-", "tree"},
		{"out/site.html", "x.txt", "out/site"},
		{"out/site", "x.txt", "out/site"},
		{"out/site.v2", "x.txt", "out/site.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestIsMarkdown(t *testing.T) {
	for path, want := range map[string]bool{
		"README.md":      true,
		"notes.MARKDOWN": true,
		"tree.txt":       false,
		"-":              false,
	} {
		if got := isMarkdown(path); got != want {
			t.Errorf("isMarkdown(%q) = %v", path, got)
		}
	}
}
