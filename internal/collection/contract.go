package collection

import (
	"context"

	"github.com/unkn0wn-root/pmgen/internal/catalog"
	"github.com/unkn0wn-root/pmgen/internal/postman"
)

const DefaultOutputPath = "Tifto_Admin_API_Collection.postman_collection.json"

type Source interface {
	Groups(ctx context.Context) ([]catalog.Group, error)
}

type Assembler interface {
	Assemble(ctx context.Context, groups []catalog.Group) (*postman.Collection, error)
}

type Verifier interface {
	Verify(ctx context.Context, c *postman.Collection) error
}

type DocumentWriter interface {
	WriteDocument(
		ctx context.Context,
		c *postman.Collection,
		destination string,
		opts WriterOptions,
	) error
}

type WriterOptions struct {
	OverwriteExisting bool
}

// StaticSource serves a fixed list of groups.
type StaticSource []catalog.Group

func (s StaticSource) Groups(ctx context.Context) ([]catalog.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]catalog.Group(nil), s...), nil
}
