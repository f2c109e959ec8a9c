package postman

const (
	SchemaV21 = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

	MethodPost      = "POST"
	ContentTypeJSON = "application/json"
	BodyModeGraphQL = "graphql"
	AuthTypeBearer  = "bearer"
	ListenTest      = "test"
	ScriptTypeJS    = "text/javascript"
	VarTypeString   = "string"

	TokenVariable           = "token"
	BaseURLVariable         = "base_url"
	GraphQLEndpointVariable = "graphql_endpoint"
	WSEndpointVariable      = "ws_endpoint"
)

// Field order in these structs is the order keys appear in the written file.

type Collection struct {
	Info     Info       `json:"info"`
	Item     []Folder   `json:"item"`
	Variable []Variable `json:"variable"`
	Auth     *Auth      `json:"auth,omitempty"`
}

type Info struct {
	PostmanID   string `json:"_postman_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      string `json:"schema"`
	ExporterID  string `json:"_exporter_id"`
}

type Folder struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Item        []Item `json:"item"`
}

type Item struct {
	Name    string  `json:"name"`
	Request Request `json:"request"`
}

type Request struct {
	Method      string   `json:"method"`
	Header      []Header `json:"header"`
	Body        Body     `json:"body"`
	URL         URL      `json:"url"`
	Description string   `json:"description"`
	Auth        *Auth    `json:"auth,omitempty"`
	Event       []Event  `json:"event,omitempty"`
}

type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

type Body struct {
	Mode    string      `json:"mode"`
	GraphQL GraphQLBody `json:"graphql"`
}

// Variables holds the JSON text of the operation variables, or "" when there are none.
type GraphQLBody struct {
	Query     string `json:"query"`
	Variables string `json:"variables"`
}

type URL struct {
	Raw  string   `json:"raw"`
	Host []string `json:"host"`
}

type Variable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

type Auth struct {
	Type   string      `json:"type"`
	Bearer []AuthParam `json:"bearer"`
}

type AuthParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

type Event struct {
	Listen string `json:"listen"`
	Script Script `json:"script"`
}

type Script struct {
	Exec []string `json:"exec"`
	Type string   `json:"type"`
}

// Template returns the {{name}} reference the consuming client substitutes at request time.
func Template(name string) string {
	return "{{" + name + "}}"
}

func DefaultAuth() *Auth {
	return &Auth{
		Type: AuthTypeBearer,
		Bearer: []AuthParam{{
			Key:   TokenVariable,
			Value: Template(TokenVariable),
			Type:  VarTypeString,
		}},
	}
}

// Requests flattens the collection in folder order.
func (c *Collection) Requests() []Item {
	if c == nil {
		return nil
	}
	var out []Item
	for _, f := range c.Item {
		out = append(out, f.Item...)
	}
	return out
}
