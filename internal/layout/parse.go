package layout

import (
	"fmt"
	"strconv"
	"strings"

	"paneboard/internal/module"
)

// parser is a single left-to-right recursive-descent pass. Every production
// takes a cursor and returns the node it built plus the cursor after it.
type parser struct {
	t       *Tree
	src     string
	created []NodeID
}

// parseSubtree parses a complete descriptor into detached content. On failure
// every node built so far is discarded.
func (t *Tree) parseSubtree(src string) (NodeID, error) {
	p := &parser{t: t, src: src}
	id, end, err := p.node(0)
	if err == nil && end != len(src) {
		err = p.syntax(end, "end of input")
	}
	if err != nil {
		t.discard(p.created)
		return 0, err
	}
	return id, nil
}

func (p *parser) node(pos int) (NodeID, int, error) {
	if pos >= len(p.src) {
		return 0, pos, p.syntax(pos, "'{', '[' or '('")
	}
	switch p.src[pos] {
	case '{':
		return p.split(pos)
	case '[':
		return p.tabs(pos)
	case '(':
		return p.content(pos)
	default:
		return 0, pos, p.syntax(pos, "'{', '[' or '('")
	}
}

func (p *parser) split(pos int) (NodeID, int, error) {
	pos++ // '{'
	var spec SplitSpec

	switch p.at(pos) {
	case 'D':
		spec.Dominant = First
	case 'd':
		spec.Dominant = Second
	default:
		return 0, pos, p.syntax(pos, "'D' or 'd'")
	}
	pos++

	switch p.at(pos) {
	case 'h':
		spec.Orientation = Horizontal
	case 'v':
		spec.Orientation = Vertical
	default:
		return 0, pos, p.syntax(pos, "'h' or 'v'")
	}
	pos++

	sizeAt := pos
	size, pos, err := p.number(pos)
	if err != nil {
		return 0, pos, err
	}
	spec.Size = size

	switch p.at(pos) {
	case 'p':
		spec.Unit = Pixels
	case '%':
		spec.Unit = Percent
	default:
		return 0, pos, p.syntax(pos, "'p' or '%'")
	}
	pos++
	if spec.Unit == Percent && spec.Size > 100 {
		return 0, sizeAt, &SyntaxError{Offset: sizeAt, Expected: "percent size ≤ 100", Found: quoteToken(p.src[sizeAt : pos-1])}
	}

	var bins [2]NodeID
	for i := range bins {
		child, next, err := p.node(pos)
		if err != nil {
			return 0, next, err
		}
		bins[i] = p.bin(child)
		pos = next
	}

	if p.at(pos) != '}' {
		return 0, pos, p.syntax(pos, "'}'")
	}
	pos++

	id, n := p.t.alloc(KindSplit)
	p.created = append(p.created, id)
	n.spec = spec
	n.bins = bins
	for _, b := range bins {
		p.t.nodes[b].parent = id
	}
	return id, pos, nil
}

func (p *parser) tabs(pos int) (NodeID, int, error) {
	pos++ // '['
	var pages []Page
	for {
		if pos >= len(p.src) {
			return 0, pos, p.syntax(pos, "'{', '[', '(' or ']'")
		}
		if p.src[pos] == ']' {
			if len(pages) == 0 {
				return 0, pos, p.syntax(pos, "'{', '[' or '('")
			}
			pos++
			break
		}
		child, next, err := p.node(pos)
		if err != nil {
			return 0, next, err
		}
		pages = append(pages, Page{Bin: p.bin(child)})
		pos = next
	}

	id, n := p.t.alloc(KindTabs)
	p.created = append(p.created, id)
	n.pages = pages
	for _, pg := range pages {
		p.t.nodes[pg.Bin].parent = id
	}
	return id, pos, nil
}

func (p *parser) content(pos int) (NodeID, int, error) {
	pos++ // '('
	name, build, ok := p.t.reg.Match(p.src, pos)
	if !ok {
		word := p.word(pos)
		err := &SyntaxError{Offset: pos, Expected: "registered module name", Found: quoteToken(word)}
		if word == "" {
			err.Found = p.found(pos)
		} else if s, ok := p.t.reg.Suggest(word); ok {
			err.Suggestion = s
		}
		return 0, pos, err
	}

	cursor := pos + len(name) + 1
	inst, end, err := build(p.src, cursor, module.Env{Data: p.t.data, Authoring: p.t.authoring})
	if err != nil {
		return 0, cursor, &SyntaxError{Offset: cursor, Expected: fmt.Sprintf("valid %q fragment", name), Found: p.found(cursor), Err: err}
	}
	if inst == nil || end < cursor || end > len(p.src) {
		if inst != nil {
			inst.Destroy()
		}
		return 0, cursor, &ContractViolationError{Module: name, Capability: "build", Err: fmt.Errorf("builder returned cursor %d outside [%d, %d]", end, cursor, len(p.src))}
	}
	id := p.t.attachLeaf(name, inst)
	p.created = append(p.created, id)

	if p.at(end) != ')' {
		return 0, end, p.syntax(end, "')'")
	}
	return id, end + 1, nil
}

func (p *parser) number(pos int) (float64, int, error) {
	start := pos
	digits := 0
	for pos < len(p.src) && p.src[pos] >= '0' && p.src[pos] <= '9' {
		pos++
		digits++
	}
	if pos < len(p.src) && p.src[pos] == '.' {
		pos++
		for pos < len(p.src) && p.src[pos] >= '0' && p.src[pos] <= '9' {
			pos++
			digits++
		}
	}
	if digits == 0 {
		return 0, start, p.syntax(start, "decimal size")
	}
	v, err := strconv.ParseFloat(p.src[start:pos], 64)
	if err != nil {
		return 0, start, &SyntaxError{Offset: start, Expected: "decimal size", Found: quoteToken(p.src[start:pos]), Err: err}
	}
	return v, pos, nil
}

// bin wraps parsed content in a Bin owned by the parse.
func (p *parser) bin(content NodeID) NodeID {
	id := p.t.newBin(content)
	p.created = append(p.created, id)
	return id
}

func (p *parser) at(pos int) byte {
	if pos < len(p.src) {
		return p.src[pos]
	}
	return 0
}

// word returns the module-name candidate at pos: everything up to ':' or a delimiter.
func (p *parser) word(pos int) string {
	end := pos
	for end < len(p.src) && !strings.ContainsRune(":(){}[]", rune(p.src[end])) {
		end++
	}
	return p.src[pos:end]
}

func (p *parser) found(pos int) string {
	if pos >= len(p.src) {
		return "end of input"
	}
	return quoteToken(p.src[pos : pos+1])
}

func (p *parser) syntax(pos int, expected string) error {
	return &SyntaxError{Offset: pos, Expected: expected, Found: p.found(pos)}
}

func quoteToken(s string) string {
	return "'" + s + "'"
}

// attachLeaf registers a built instance as a detached leaf and binds its host.
func (t *Tree) attachLeaf(name string, inst module.Content) NodeID {
	id, n := t.alloc(KindLeaf)
	n.module = name
	n.inst = inst
	inst.Bind(leafHost{t: t, leaf: id})
	inst.Config(t.authoring)
	return id
}
