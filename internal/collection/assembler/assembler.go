package assembler

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/pmgen/internal/catalog"
	"github.com/unkn0wn-root/pmgen/internal/postman"
)

const (
	DefaultName       = "Tifto Admin API - GraphQL"
	DefaultBackend    = "Tifto Admin backend"
	DefaultBaseURL    = "https://tifto-backend.onrender.com"
	DefaultWSEndpoint = "wss://tifto-backend.onrender.com/graphql"
	DefaultExporterID = "tifto-admin-api"
)

// Meta describes the collection header and its endpoint variables.
// An empty Description is derived from Backend, the catalog and endpoints.
type Meta struct {
	Name        string
	Backend     string
	Description string
	BaseURL     string
	WSEndpoint  string
	ExporterID  string
}

func DefaultMeta() Meta {
	return Meta{
		Name:       DefaultName,
		Backend:    DefaultBackend,
		BaseURL:    DefaultBaseURL,
		WSEndpoint: DefaultWSEndpoint,
		ExporterID: DefaultExporterID,
	}
}

// Progress is called after each folder is appended with the folder count so far.
type Progress func(folder string, total int)

type Option func(*Builder)

func WithProgress(fn Progress) Option {
	return func(b *Builder) {
		b.progress = fn
	}
}

type Builder struct {
	meta     Meta
	progress Progress
}

func New(meta Meta, opts ...Option) *Builder {
	b := &Builder{meta: normaliseMeta(meta)}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *Builder) Meta() Meta {
	return b.meta
}

func (b *Builder) Assemble(
	ctx context.Context,
	groups []catalog.Group,
) (*postman.Collection, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c := b.newCollection(catalog.Count(groups))
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.Item = append(c.Item, g.Folder())
		if b.progress != nil {
			b.progress(g.Name, len(c.Item))
		}
	}
	return c, nil
}

func (b *Builder) newCollection(operations int) *postman.Collection {
	m := b.meta
	desc := m.Description
	if desc == "" {
		desc = defaultDescription(m, operations)
	}
	return &postman.Collection{
		Info: postman.Info{
			PostmanID:   CollectionID(m.Name),
			Name:        m.Name,
			Description: desc,
			Schema:      postman.SchemaV21,
			ExporterID:  m.ExporterID,
		},
		Item: []postman.Folder{},
		Variable: []postman.Variable{
			stringVar(postman.BaseURLVariable, m.BaseURL),
			stringVar(
				postman.GraphQLEndpointVariable,
				postman.Template(postman.BaseURLVariable)+"/graphql",
			),
			stringVar(postman.WSEndpointVariable, m.WSEndpoint),
			stringVar(postman.TokenVariable, ""),
		},
		Auth: postman.DefaultAuth(),
	}
}

// CollectionID derives a stable collection id from its name so repeated runs
// produce identical files.
func CollectionID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("pmgen:"+name)).String()
}

func defaultDescription(m Meta, operations int) string {
	return fmt.Sprintf(
		"Complete GraphQL API collection for %s. Contains %d operations including queries, mutations, and subscriptions.\n\nBase URL: %s/graphql\nWebSocket: %s",
		m.Backend,
		operations,
		m.BaseURL,
		m.WSEndpoint,
	)
}

func stringVar(key, value string) postman.Variable {
	return postman.Variable{Key: key, Value: value, Type: postman.VarTypeString}
}

func normaliseMeta(m Meta) Meta {
	def := DefaultMeta()
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		m.Name = def.Name
	}
	m.Backend = strings.TrimSpace(m.Backend)
	if m.Backend == "" {
		m.Backend = def.Backend
	}
	m.BaseURL = strings.TrimRight(strings.TrimSpace(m.BaseURL), "/")
	if m.BaseURL == "" {
		m.BaseURL = def.BaseURL
	}
	m.WSEndpoint = strings.TrimSpace(m.WSEndpoint)
	if m.WSEndpoint == "" {
		m.WSEndpoint = def.WSEndpoint
	}
	m.ExporterID = strings.TrimSpace(m.ExporterID)
	if m.ExporterID == "" {
		m.ExporterID = def.ExporterID
	}
	return m
}
