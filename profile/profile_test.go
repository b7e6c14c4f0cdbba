package profile

import (
	"slices"
	"testing"

	"github.com/corposant/stevedore/engine"
)

func TestLoad(t *testing.T) {
	p, err := Load("testdata/sandbox.hujson")
	if err != nil {
		t.Fatal(err)
	}

	if p.Name != "sandbox" {
		t.Fatal("expected the sandbox profile, got", p.Name)
	}
	if p.MaxStack != 512 {
		t.Fatal("expected a ceiling of 512, got", p.MaxStack)
	}
	if !slices.Equal(p.Libraries, []string{"text", "seq"}) {
		t.Fatal("expected text and seq, got", p.Libraries)
	}
	if len(p.Types) != 1 || p.Types[0].Name != "Blob" {
		t.Fatal("expected the Blob declaration, got", p.Types)
	}
}

func TestParseComments(t *testing.T) {
	// comments and trailing commas are part of the format
	p, err := Parse([]byte(`{
		// minimal
		"name": "tiny",
		"libraries": ["buffer",],
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	for _, c := range []struct {
		name string
		p    Profile
	}{
		{"unknown library", Profile{Libraries: []string{"net"}}},
		{"repeated library", Profile{Libraries: []string{"seq", "seq"}}},
		{"negative ceiling", Profile{MaxStack: -1}},
		{"unnamed type", Profile{Types: []TypeDecl{{}}}},
		{"repeated type", Profile{Types: []TypeDecl{{Name: "Blob"}, {Name: "Blob"}}}},
	} {
		t.Run(c.name, func(t *testing.T) {
			if c.p.Validate() == nil {
				t.Fatal("expected a validation error")
			}
		})
	}

	ok := Profile{MaxStack: 100, Libraries: LibNames()}
	if err := ok.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestApply(t *testing.T) {
	p, err := Load("testdata/sandbox.hujson")
	if err != nil {
		t.Fatal(err)
	}

	s := engine.New()
	if err := p.Apply(s); err != nil {
		t.Fatal(err)
	}

	if s.Global("text") == nil || s.Global("seq") == nil {
		t.Fatal("expected the listed libraries installed")
	}
	if s.Global("buffer") != nil {
		t.Fatal("expected buffer left out")
	}
	if s.TagOf("Blob") == nil {
		t.Fatal("expected the Blob tag registered")
	}

	// a second apply collides on the declared type
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a duplicate registration panic")
			}
		}()
		p.Apply(s)
	}()
}

func TestApplyInvalid(t *testing.T) {
	p := &Profile{Libraries: []string{"nope"}}
	if err := p.Apply(engine.New()); err == nil {
		t.Fatal("expected the invalid profile rejected")
	}
}
