package output

import (
	"strings"
	"testing"

	"github.com/r0ller/morfessor/cost"
	"github.com/r0ller/morfessor/tree"
)

func TestWritePlainFormat(t *testing.T) {
	t.Parallel()

	tr := tree.New(cost.Baseline, cost.DefaultParams())
	if err := tr.Initialize("reopen", 5); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := WritePlain(&buf, tr); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Overall cost: ") {
		t.Errorf("output does not start with the overall cost header: %q", out)
	}
	if !strings.Contains(out, "5 reopen\n") {
		t.Errorf("output missing leaf line %q: %q", "5 reopen", out)
	}
}

func TestWriteDOTIncludesSplitEdges(t *testing.T) {
	t.Parallel()

	tr := tree.New(cost.Baseline, cost.DefaultParams())
	tr.Initialize("reopen", 1)
	if err := tr.Split("reopen", 2); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := WriteDOT(&buf, tr); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"digraph segmentation_tree", `"reopen" -> "re"`, `"reopen" -> "open"`} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSegmentations(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := WriteSegmentations(&buf, []string{"re open", "trying"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "re open\ntrying\n"; got != want {
		t.Errorf("WriteSegmentations output = %q, want %q", got, want)
	}
}
