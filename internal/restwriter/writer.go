// Package restwriter renders a collection as a resterm .http file so the same
// operations can be run from the terminal.
package restwriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/unkn0wn-root/pmgen/internal/collection/writer"
	"github.com/unkn0wn-root/pmgen/internal/errdef"
	"github.com/unkn0wn-root/pmgen/internal/postman"
)

type Options struct {
	OverwriteExisting bool
	HeaderComment     string
}

func WriteDocument(ctx context.Context, c *postman.Collection, dst string, opts Options) error {
	if c == nil {
		return errdef.New(errdef.CodeEncode, "writer: collection is nil")
	}
	if strings.TrimSpace(dst) == "" {
		return errdef.New(errdef.CodeFilesystem, "writer: destination path is empty")
	}

	content := Render(c, opts)
	if err := ctx.Err(); err != nil {
		return err
	}
	return writer.WriteFile(dst, []byte(content), opts.OverwriteExisting)
}

func Render(c *postman.Collection, opts Options) string {
	var b strings.Builder

	renderHeader(&b, opts.HeaderComment)
	renderVariables(&b, c.Variable)
	if len(c.Variable) > 0 {
		b.WriteString("\n")
	}

	idx := 0
	for _, folder := range c.Item {
		for _, item := range folder.Item {
			if idx > 0 {
				b.WriteString("\n")
			}
			renderRequest(&b, folder, item, c.Auth)
			idx++
		}
	}

	return b.String()
}

func renderHeader(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("# ")
		b.WriteString(strings.TrimSpace(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// The token is captured at runtime, so it is declared secret and left empty.
func renderVariables(b *strings.Builder, vars []postman.Variable) {
	for _, v := range vars {
		val := strings.TrimSpace(v.Value)
		if v.Key == postman.TokenVariable {
			fmt.Fprintf(b, "# @global-secret %s\n", v.Key)
			continue
		}
		fmt.Fprintf(b, "# @global %s %s\n", v.Key, val)
	}
}

func renderRequest(b *strings.Builder, folder postman.Folder, item postman.Item, def *postman.Auth) {
	req := item.Request
	b.WriteString("### ")
	b.WriteString(item.Name)
	b.WriteString("\n")
	b.WriteString("# @name ")
	b.WriteString(item.Name)
	b.WriteString("\n")

	renderDescription(b, req.Description)
	renderTags(b, []string{folder.Name})
	renderAuth(b, effectiveAuth(req, def))
	renderCaptures(b, req.Event)

	b.WriteString("# @graphql\n")
	if op := OperationName(req.Body.GraphQL.Query); op != "" {
		b.WriteString("# @operation ")
		b.WriteString(op)
		b.WriteString("\n")
	}

	b.WriteString(reqLine(req))
	renderHeaders(b, req.Header)
	b.WriteString("\n")

	query := strings.TrimSpace(req.Body.GraphQL.Query)
	if query != "" {
		b.WriteString(query)
		b.WriteString("\n")
	}
	if vars := prettyVariables(req.Body.GraphQL.Variables); vars != "" {
		b.WriteString("\n# @variables\n")
		b.WriteString(vars)
		b.WriteString("\n")
	}
}

// Login requests carry no auth; everything else inherits the collection default.
func effectiveAuth(req postman.Request, def *postman.Auth) *postman.Auth {
	if req.Auth != nil {
		return req.Auth
	}
	if len(req.Event) > 0 {
		return nil
	}
	return def
}

func renderDescription(b *strings.Builder, desc string) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return
	}
	for _, line := range strings.Split(desc, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		b.WriteString("# @description ")
		b.WriteString(t)
		b.WriteString("\n")
	}
}

func renderTags(b *strings.Builder, tags []string) {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.Join(strings.Fields(tag), "-"))
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return
	}
	b.WriteString("# @tag ")
	b.WriteString(strings.Join(out, " "))
	b.WriteString("\n")
}

func renderAuth(b *strings.Builder, auth *postman.Auth) {
	if auth == nil || !strings.EqualFold(auth.Type, postman.AuthTypeBearer) {
		return
	}
	token := ""
	for _, p := range auth.Bearer {
		if p.Key == "token" {
			token = strings.TrimSpace(p.Value)
		}
	}
	if token == "" {
		return
	}
	b.WriteString("# @auth bearer ")
	b.WriteString(token)
	b.WriteString("\n")
}

// renderCaptures maps the login token script onto a file-scoped capture.
func renderCaptures(b *strings.Builder, events []postman.Event) {
	for _, ev := range events {
		if ev.Listen != postman.ListenTest {
			continue
		}
		src := strings.Join(ev.Script.Exec, "\n")
		if !strings.Contains(src, "pm.collectionVariables.set(\""+postman.TokenVariable+"\"") {
			continue
		}
		fmt.Fprintf(
			b,
			"# @capture global-secret %s {{response.json.data.%s.token}}\n",
			postman.TokenVariable,
			postman.LoginTokenPath,
		)
	}
}

func reqLine(req postman.Request) string {
	m := strings.ToUpper(strings.TrimSpace(req.Method))
	if m == "" {
		m = postman.MethodPost
	}
	return fmt.Sprintf("%s %s\n", m, strings.TrimSpace(req.URL.Raw))
}

func renderHeaders(b *strings.Builder, hdr []postman.Header) {
	sorted := append([]postman.Header(nil), hdr...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	for _, h := range sorted {
		b.WriteString(h.Key)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteString("\n")
	}
}

func prettyVariables(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return out.String()
}

// OperationName returns the name following the query, mutation or
// subscription keyword, or "" for anonymous operations.
func OperationName(query string) string {
	query = strings.TrimSpace(query)
	for _, kw := range []string{"query", "mutation", "subscription"} {
		rest, ok := strings.CutPrefix(query, kw)
		if !ok || rest == "" || !unicode.IsSpace(rune(rest[0])) {
			continue
		}
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		end := strings.IndexFunc(rest, func(r rune) bool {
			return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if end < 0 {
			end = len(rest)
		}
		return rest[:end]
	}
	return ""
}
