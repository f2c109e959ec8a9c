// Package catalog holds the GraphQL operations written into the generated
// collection. Groups become folders in the order Default returns them.
package catalog

import (
	"strings"

	"github.com/MakeNowJust/heredoc"

	"github.com/unkn0wn-root/pmgen/internal/postman"
)

type Operation struct {
	Name        string
	Description string
	Query       string
	Variables   map[string]any
	// Public operations are sent without the bearer override.
	Public bool
	Login  bool
}

type Group struct {
	Name        string
	Description string
	Operations  []Operation
}

func (op Operation) Item() postman.Item {
	var opts []postman.ItemOption
	if op.Public {
		opts = append(opts, postman.WithoutAuth())
	}
	if op.Login {
		opts = append(opts, postman.AsLogin())
	}
	return postman.NewRequestItem(op.Name, op.Description, op.Query, op.Variables, opts...)
}

func (g Group) Folder() postman.Folder {
	items := make([]postman.Item, 0, len(g.Operations))
	for _, op := range g.Operations {
		items = append(items, op.Item())
	}
	return postman.NewFolder(g.Name, g.Description, items)
}

// Default returns a fresh copy of the built-in catalog on every call.
func Default() []Group {
	return []Group{
		authentication(),
		dashboard(),
		categories(),
		food(),
		commissionRates(),
		coupons(),
		ratings(),
		subscriptions(),
	}
}

// Count returns the number of operations across groups.
func Count(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Operations)
	}
	return n
}

func gql(raw string) string {
	return strings.TrimRight(heredoc.Doc(raw), "\n")
}
