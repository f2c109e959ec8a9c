package postman

import (
	"bytes"
	"encoding/json"
)

type itemOptions struct {
	authRequired bool
	login        bool
}

type ItemOption func(*itemOptions)

// WithoutAuth leaves the item without a per-request auth override.
func WithoutAuth() ItemOption {
	return func(o *itemOptions) {
		o.authRequired = false
	}
}

// AsLogin marks the item as the login operation. Login items never carry an
// auth override and get the token-extraction test script.
func AsLogin() ItemOption {
	return func(o *itemOptions) {
		o.login = true
	}
}

func NewRequestItem(
	name, description, query string,
	variables map[string]any,
	opts ...ItemOption,
) Item {
	o := itemOptions{authRequired: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	endpoint := Template(GraphQLEndpointVariable)
	req := Request{
		Method: MethodPost,
		Header: []Header{{
			Key:   "Content-Type",
			Value: ContentTypeJSON,
			Type:  "text",
		}},
		Body: Body{
			Mode: BodyModeGraphQL,
			GraphQL: GraphQLBody{
				Query:     query,
				Variables: EncodeVariables(variables),
			},
		},
		URL: URL{
			Raw:  endpoint,
			Host: []string{endpoint},
		},
		Description: description,
	}

	if o.authRequired && !o.login {
		req.Auth = DefaultAuth()
	}
	if o.login {
		req.Event = []Event{LoginTokenEvent()}
	}

	return Item{Name: name, Request: req}
}

func NewFolder(name, description string, items []Item) Folder {
	return Folder{Name: name, Description: description, Item: items}
}

// EncodeVariables returns "" for nil and empty maps alike. Values that cannot
// be encoded also yield "" since the builders never fail.
func EncodeVariables(variables map[string]any) string {
	if len(variables) == 0 {
		return ""
	}
	data, err := marshalNoEscape(variables)
	if err != nil {
		return ""
	}
	return string(data)
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
