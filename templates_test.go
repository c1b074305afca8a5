package hyperview_test

import (
	"testing"

	hyperview "github.com/goliatone/go-hyperview"
)

func TestEmbeddedTemplates(t *testing.T) {
	fsys := hyperview.EmbeddedTemplates()
	if fsys == nil {
		t.Fatal("expected embedded templates")
	}

	for _, name := range []string{"Page.html", "Form.html", "StatusError.html"} {
		file, err := fsys.Open(name)
		if err != nil {
			t.Fatalf("expected template %s: %v", name, err)
		}
		file.Close()
	}
}
