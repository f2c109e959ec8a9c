package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/unkn0wn-root/pmgen/internal/catalog"
	"github.com/unkn0wn-root/pmgen/internal/postman"
)

type fakeAssembler struct {
	groups []catalog.Group
}

func (f *fakeAssembler) Assemble(_ context.Context, groups []catalog.Group) (*postman.Collection, error) {
	f.groups = groups
	c := &postman.Collection{Auth: postman.DefaultAuth()}
	for _, g := range groups {
		c.Item = append(c.Item, g.Folder())
	}
	return c, nil
}

type fakeVerifier struct {
	err error
}

func (f fakeVerifier) Verify(context.Context, *postman.Collection) error {
	return f.err
}

type fakeWriter struct {
	dst   string
	opts  WriterOptions
	calls int
}

func (f *fakeWriter) WriteDocument(_ context.Context, _ *postman.Collection, dst string, opts WriterOptions) error {
	f.calls++
	f.dst = dst
	f.opts = opts
	return nil
}

func TestServiceGenerate(t *testing.T) {
	asm := &fakeAssembler{}
	w := &fakeWriter{}
	svc := Service{
		Source:    StaticSource(catalog.Default()),
		Assembler: asm,
		Verifier:  fakeVerifier{},
		Writer:    w,
	}
	c, err := svc.Generate(context.Background(), "", WriterOptions{OverwriteExisting: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(c.Item) != len(catalog.Default()) {
		t.Fatalf("unexpected folder count %d", len(c.Item))
	}
	if w.calls != 1 || w.dst != DefaultOutputPath || !w.opts.OverwriteExisting {
		t.Fatalf("unexpected writer call %#v", w)
	}
}

func TestServiceVerifierStopsWrite(t *testing.T) {
	w := &fakeWriter{}
	boom := errors.New("bad script")
	svc := Service{
		Source:    StaticSource(catalog.Default()),
		Assembler: &fakeAssembler{},
		Verifier:  fakeVerifier{err: boom},
		Writer:    w,
	}
	if _, err := svc.Generate(context.Background(), "out.json", WriterOptions{}); !errors.Is(err, boom) {
		t.Fatalf("expected verifier error, got %v", err)
	}
	if w.calls != 0 {
		t.Fatalf("writer must not run after a failed verification")
	}
}

func TestServiceNotConfigured(t *testing.T) {
	cases := map[string]Service{
		"source":    {Assembler: &fakeAssembler{}, Writer: &fakeWriter{}},
		"assembler": {Source: StaticSource(nil), Writer: &fakeWriter{}},
		"writer":    {Source: StaticSource(nil), Assembler: &fakeAssembler{}},
	}
	for name, svc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Generate(context.Background(), "out.json", WriterOptions{}); err == nil {
				t.Fatalf("expected configuration error")
			}
		})
	}
}

func TestStaticSourceCopies(t *testing.T) {
	src := StaticSource(catalog.Default())
	groups, err := src.Groups(context.Background())
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	groups[0] = catalog.Group{Name: "changed"}
	if src[0].Name == "changed" {
		t.Fatalf("source slice should not be shared with callers")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Groups(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
