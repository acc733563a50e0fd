package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter(t *testing.T) {
	tests := []struct {
		name  string
		print func(p printer)
		want  []string
	}{
		{"success", func(p printer) { p.success("Rendered %d blocks", 2) }, []string{iconSuccess, "Rendered 2 blocks"}},
		{"warning", func(p printer) { p.warning("block %d failed", 1) }, []string{iconWarning, "block 1 failed"}},
		{"file", func(p printer) { p.file("out/tree.html") }, []string{iconArrow, "out/tree.html"}},
		{"fresh stats", func(p printer) { p.stats(4, 2, false) }, []string{"4 nodes", "2 directories", "fresh"}},
		{"cached stats", func(p printer) { p.stats(1, 0, true) }, []string{"1 nodes", "cached"}},
		{"next step", func(p printer) { p.nextStep("Try", "treeview view") }, []string{"Try:", "treeview view"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(printer{w: &buf})
			out := buf.String()
			if !strings.HasSuffix(out, "\n") {
				t.Errorf("output %q should end with a newline", out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestPrinterNilWriter(t *testing.T) {
	// Must not panic.
	printer{}.success("nothing")
	printer{}.stats(1, 1, true)
}

func TestConfigShowListsKeys(t *testing.T) {
	out, err := runCLI(t, tempConfig(t), "", "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"collapsed", "outputs", "server.addr"} {
		if !strings.Contains(out, key) {
			t.Errorf("config show missing %q:\n%s", key, out)
		}
	}
}
