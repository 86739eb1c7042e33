package types

// Component identifies one stage of the compiler test harness
type Component uint8

const (
	ComponentLexer Component = iota + 1
	ComponentParser
	ComponentSem
	ComponentCodegen
	ComponentRegalloc
)

// Components lists every component in display order
var Components = [...]Component{
	ComponentLexer,
	ComponentParser,
	ComponentSem,
	ComponentCodegen,
	ComponentRegalloc,
}

type componentInfo struct {
	name      string
	heading   string
	linkTitle string
}

var componentInfos = map[Component]componentInfo{
	ComponentLexer:    {name: "lexer", heading: "Part I: Lexer", linkTitle: "Part I: Lexer"},
	ComponentParser:   {name: "parser", heading: "Part I & II: Parser", linkTitle: "Part I & II: Parser"},
	ComponentSem:      {name: "sem", heading: "Part II: Semantic Analysis", linkTitle: "Part II: Semantics"},
	ComponentCodegen:  {name: "codegen", heading: "Part III: Code Generation", linkTitle: "Part III: Codegen"},
	ComponentRegalloc: {name: "regalloc", heading: "Part IV: Register Allocation", linkTitle: "Part IV: Register Allocation"},
}

// ParseComponent converts the wire name of a component into a Component.
// Any name outside the fixed set yields an *UnknownComponentError.
func ParseComponent(name string) (Component, error) {
	for _, c := range Components {
		if componentInfos[c].name == name {
			return c, nil
		}
	}
	return 0, &UnknownComponentError{Value: name}
}

// IsValid reports whether c is one of the enumerated components
func (c Component) IsValid() bool {
	_, ok := componentInfos[c]
	return ok
}

// String returns the wire name, e.g. "lexer"
func (c Component) String() string {
	if !c.IsValid() {
		return "unknown"
	}
	return componentInfos[c].name
}

// Anchor returns the in-document anchor id of the component's detail section
func (c Component) Anchor() string {
	return c.String()
}

// Heading returns the title used for the detail section
func (c Component) Heading() string {
	return componentInfos[c].heading
}

// LinkTitle returns the (possibly abbreviated) title used in the overview table
func (c Component) LinkTitle() string {
	return componentInfos[c].linkTitle
}
