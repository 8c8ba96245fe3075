package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/celconf/celconf/internal/scenario"
	"github.com/celconf/celconf/internal/typeenv"
	"github.com/celconf/celconf/internal/value"
)

// The *Doc types mirror the YAML suite layout. They are decoded after the
// document passes schema validation, so the conversions below only check what
// the schema cannot express.

type suiteDoc struct {
	Suite     string        `yaml:"suite"`
	Scenarios []scenarioDoc `yaml:"scenarios"`
}

type scenarioDoc struct {
	Name         string       `yaml:"name"`
	Expr         string       `yaml:"expr"`
	Quote        string       `yaml:"quote"`
	Container    string       `yaml:"container"`
	DisableCheck bool         `yaml:"disable_check"`
	TypeEnv      []typeEnvDoc `yaml:"type_env"`
	Bindings     []bindingDoc `yaml:"bindings"`
	Want         wantDoc      `yaml:"want"`
}

type typeEnvDoc struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	Type      string `yaml:"type"`
	KeyType   string `yaml:"key_type"`
	ValueType string `yaml:"value_type"`
}

type bindingDoc struct {
	Name  string  `yaml:"name"`
	Value nodeDoc `yaml:"value"`
}

type wantDoc struct {
	Value *nodeDoc
	Null  *bool
	Error *string
}

// UnmarshalYAML decodes the want block by raw key spelling. A bare "null" key
// would otherwise resolve to the null scalar and never match a struct field.
func (w *wantDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: want must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		switch key {
		case "value":
			var nd nodeDoc
			if err := val.Decode(&nd); err != nil {
				return err
			}
			w.Value = &nd
		case "null":
			var b bool
			if err := val.Decode(&b); err != nil {
				return err
			}
			w.Null = &b
		case "error":
			var s string
			if err := val.Decode(&s); err != nil {
				return err
			}
			w.Error = &s
		default:
			return fmt.Errorf("line %d: unknown want key %q", n.Line, key)
		}
	}
	return nil
}

// nodeDoc decodes a fixture literal: a single-key mapping whose key names the
// value kind.
type nodeDoc struct {
	node value.Node
}

type entryDoc struct {
	Key   nodeDoc `yaml:"key"`
	Value nodeDoc `yaml:"value"`
}

type objectDoc struct {
	Namespace string     `yaml:"namespace"`
	Fields    []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name  string  `yaml:"name"`
	Value nodeDoc `yaml:"value"`
}

func (d *nodeDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return fmt.Errorf("line %d: value must be a single-key mapping", n.Line)
	}

	tag := n.Content[0].Value
	payload := n.Content[1]

	switch tag {
	case "list":
		var elems []nodeDoc
		if err := payload.Decode(&elems); err != nil {
			return err
		}
		nodes := make([]value.Node, len(elems))
		for i, e := range elems {
			nodes[i] = e.node
		}
		d.node = value.List{Elems: nodes}
		return nil

	case "map":
		var entries []entryDoc
		if err := payload.Decode(&entries); err != nil {
			return err
		}
		group := make([]value.Entry, len(entries))
		for i, e := range entries {
			group[i] = value.Entry{Key: e.Key.node, Value: e.Value.node}
		}
		d.node = value.Map{Groups: [][]value.Entry{group}}
		return nil

	case "object":
		var o objectDoc
		if err := payload.Decode(&o); err != nil {
			return err
		}
		fields := make([]value.Field, len(o.Fields))
		for i, f := range o.Fields {
			scalar, ok := f.Value.node.(value.Value)
			if !ok {
				return fmt.Errorf("line %d: object field %q must be a scalar", n.Line, f.Name)
			}
			fields[i] = value.Field{Name: f.Name, Value: scalar}
		}
		d.node = value.Object{Namespace: o.Namespace, Fields: fields}
		return nil
	}

	kind, ok := value.ParseKind(tag)
	if !ok {
		return fmt.Errorf("line %d: unknown value kind %q", n.Line, tag)
	}
	if payload.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %s payload must be a scalar", n.Line, tag)
	}
	d.node = value.Value{Kind: kind, Payload: payload.Value}
	return nil
}

func (d scenarioDoc) convert() (Scenario, error) {
	s := Scenario{
		Name:         d.Name,
		Expr:         d.Expr,
		Quote:        DefaultQuote,
		Container:    d.Container,
		DisableCheck: d.DisableCheck,
	}

	switch d.Quote {
	case "":
	case `"`, `'`:
		s.Quote = d.Quote[0]
	default:
		return Scenario{}, fmt.Errorf("scenario %q: quote must be %q or %q", d.Name, `"`, `'`)
	}

	for _, te := range d.TypeEnv {
		b, err := te.convert(d.Name)
		if err != nil {
			return Scenario{}, err
		}
		s.TypeEnv = append(s.TypeEnv, b)
	}

	for _, bd := range d.Bindings {
		s.Bindings = append(s.Bindings, Binding{Name: bd.Name, Value: bd.Value.node})
	}

	want, err := d.Want.convert(d.Name)
	if err != nil {
		return Scenario{}, err
	}
	s.Want = want

	return s, nil
}

func (d typeEnvDoc) convert(scenarioName string) (typeenv.Binding, error) {
	switch d.Kind {
	case "", "primitive":
		if d.Type == "" {
			return typeenv.Binding{}, fmt.Errorf("scenario %q: type binding %q needs a type", scenarioName, d.Name)
		}
		return typeenv.Primitive(d.Name, d.Type), nil
	case "map":
		if d.KeyType == "" || d.ValueType == "" {
			return typeenv.Binding{}, fmt.Errorf("scenario %q: map binding %q needs key_type and value_type", scenarioName, d.Name)
		}
		return typeenv.MapOf(d.Name, d.KeyType, d.ValueType), nil
	default:
		return typeenv.Binding{}, fmt.Errorf("scenario %q: unknown type binding kind %q", scenarioName, d.Kind)
	}
}

func (d wantDoc) convert(scenarioName string) (scenario.Expectation, error) {
	set := 0
	if d.Value != nil {
		set++
	}
	if d.Null != nil {
		set++
	}
	if d.Error != nil {
		set++
	}
	if set != 1 {
		return scenario.Expectation{}, fmt.Errorf("scenario %q: want must set exactly one of value, null, error", scenarioName)
	}

	switch {
	case d.Value != nil:
		return scenario.ExpectValue(d.Value.node), nil
	case d.Null != nil:
		// "null: false" expects nothing; only the affirmative form is a
		// meaningful expectation.
		if !*d.Null {
			return scenario.Expectation{}, fmt.Errorf("scenario %q: want null must be true", scenarioName)
		}
		return scenario.ExpectNull(), nil
	default:
		return scenario.ExpectError(*d.Error), nil
	}
}
