// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Program is a list of expressions loaded from YAML.
//
// A program file holds one sequence of expressions per document.
// Sequences become arrays and mappings dictionaries, so a sequence headed
// by a function is a sigma:
//
//	# squares, a sum, and a cascade
//	- [map, "@square", [1, 2, 3]]
//	- ["@reduce", "@add", [1, 2, 3, 4], 0]
//	- ["@cascade", ["@square", "@sqrt"], -4]
//
// Plain scalars that name a library function and strings starting with
// "@" resolve to functions; "@@" escapes a literal "@". Tags add the
// remaining kinds:
//
//	!oob 0          out-of-band integer
//	!range 0:10:2   range; the step may be omitted, "5:" is open
//	!list [1, 2]    list instead of array
//	!ref 3          reference cell
//
// Anchors and aliases share one aggregate between expressions. An alias
// inside its own anchored node makes the aggregate cyclic.
type Program struct {
	Name  string
	Exprs []Item
}

// LoadProgram reads a program file, resolving function names in lib.
func LoadProgram(path string, lib Library) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sigma: cannot read %s: %w", path, err)
	}
	return ParseProgram(filepath.Base(path), data, lib)
}

// ParseProgram decodes program source.
func ParseProgram(name string, data []byte, lib Library) (*Program, error) {
	p := &Program{Name: name}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("sigma: parse %s: %w", name, err)
		}
		b := &programBuilder{lib: lib, built: make(map[*yaml.Node]Item)}
		root := &doc
		if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
			root = root.Content[0]
		}
		if root.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("sigma: parse %s: line %d: a program is a sequence of expressions", name, root.Line)
		}
		for _, n := range root.Content {
			v, err := b.item(n)
			if err != nil {
				return nil, fmt.Errorf("sigma: parse %s: %w", name, err)
			}
			p.Exprs = append(p.Exprs, v)
		}
	}
	return p, nil
}

type programBuilder struct {
	lib   Library
	built map[*yaml.Node]Item
}

func (b *programBuilder) item(n *yaml.Node) (Item, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if v, ok := b.built[n]; ok {
		return v, nil
	}
	keep := func(Item) {}
	if n.Anchor != "" {
		keep = func(v Item) { b.built[n] = v }
	}
	v, err := b.build(n, keep)
	if err != nil {
		return Nil, err
	}
	keep(v)
	return v, nil
}

// build converts n. Aggregates hand themselves to keep before their
// children are built, so an alias inside an anchored node resolves to the
// enclosing aggregate.
func (b *programBuilder) build(n *yaml.Node, keep func(Item)) (Item, error) {
	switch n.Tag {
	case "!oob":
		inner := *n
		inner.Tag = ""
		v, err := b.build(&inner, func(v Item) { keep(v.SetOob()) })
		return v.SetOob(), err
	case "!ref":
		r := &Ref{}
		keep(RefOf(r))
		inner := *n
		inner.Tag = ""
		v, err := b.build(&inner, func(Item) {})
		r.Value = v
		return RefOf(r), err
	case "!range":
		return parseRange(n)
	case "!list":
		if n.Kind != yaml.SequenceNode {
			return Nil, fmt.Errorf("line %d: expected a sequence", n.Line)
		}
		l := NewList()
		keep(ListOf(l))
		for _, c := range n.Content {
			v, err := b.item(c)
			if err != nil {
				return Nil, err
			}
			l.PushBack(v)
		}
		return ListOf(l), nil
	}

	switch n.Kind {
	case yaml.SequenceNode:
		a := NewArray(len(n.Content))
		keep(ArrayOf(a))
		for _, c := range n.Content {
			v, err := b.item(c)
			if err != nil {
				return Nil, err
			}
			a.Append(v)
		}
		return ArrayOf(a), nil
	case yaml.MappingNode:
		d := NewDict()
		keep(DictOf(d))
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := b.item(n.Content[i])
			if err != nil {
				return Nil, err
			}
			v, err := b.item(n.Content[i+1])
			if err != nil {
				return Nil, err
			}
			d.Set(k, v)
		}
		return DictOf(d), nil
	case yaml.ScalarNode:
		return b.scalar(n)
	}
	return Nil, fmt.Errorf("line %d: unexpected YAML node", n.Line)
}

func (b *programBuilder) scalar(n *yaml.Node) (Item, error) {
	switch n.ShortTag() {
	case "!!null":
		return Nil, nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return Nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(v), nil
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return Nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Int(v), nil
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return Nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Float(v), nil
	}
	s := n.Value
	switch {
	case strings.HasPrefix(s, "@@"):
		return Str(s[1:]), nil
	case strings.HasPrefix(s, "@"):
		fn, ok := b.lib.Lookup(s[1:])
		if !ok {
			return Nil, fmt.Errorf("line %d: unknown function %q", n.Line, s[1:])
		}
		return fn, nil
	case n.Style == 0:
		if fn, ok := b.lib.Lookup(s); ok {
			return fn, nil
		}
	}
	return Str(s), nil
}

// parseRange reads "start:end[:step]" or the open form "start:".
func parseRange(n *yaml.Node) (Item, error) {
	bad := fmt.Errorf("line %d: bad range %q", n.Line, n.Value)
	parts := strings.Split(n.Value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Nil, bad
	}
	start, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Nil, bad
	}
	if len(parts) == 2 && strings.TrimSpace(parts[1]) == "" {
		return OpenRange(start), nil
	}
	end, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return Nil, bad
	}
	var step int64
	if len(parts) == 3 {
		if step, err = strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64); err != nil {
			return Nil, bad
		}
	}
	return RangeOf(start, end, step), nil
}
