package scripts

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/pmgen/internal/errdef"
	"github.com/unkn0wn-root/pmgen/internal/postman"
)

// Checker rejects collections whose event scripts would not parse in the client.
type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

func (c *Checker) Verify(ctx context.Context, col *postman.Collection) error {
	if col == nil {
		return errdef.New(errdef.CodeScript, "verify: collection is nil")
	}
	for _, folder := range col.Item {
		for _, item := range folder.Item {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i, ev := range item.Request.Event {
				if ev.Listen == "" {
					return errdef.New(errdef.CodeScript, "%s/%s: event %d has no listen phase", folder.Name, item.Name, i+1)
				}
				name := fmt.Sprintf("%s/%s#%s", folder.Name, item.Name, ev.Listen)
				if err := Compile(name, ev); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// FindLogin returns the first request carrying an event script.
func FindLogin(col *postman.Collection) (postman.Item, bool) {
	for _, item := range col.Requests() {
		if len(item.Request.Event) > 0 {
			return item, true
		}
	}
	return postman.Item{}, false
}
