/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package memory

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrBadDocument is returned for model documents that cannot be applied.
var ErrBadDocument = errors.New("memory: bad model document")

// Document is the serialized form of a model. JSON documents are accepted
// too, JSON being a subset of YAML.
//
//	assemblies:
//	  - name: core
//	    version: 1.0.0
//	    types:
//	      - {namespace: System, name: Int32, valueType: true}
//	      - namespace: demo
//	        name: Counter
//	        fields:
//	          - {name: _count, type: System.Int32, nonPublic: true}
type Document struct {
	Assemblies []AssemblyDoc `yaml:"assemblies"`
}

// AssemblyDoc describes one assembly.
type AssemblyDoc struct {
	Name           string    `yaml:"name"`
	Version        string    `yaml:"version"`
	Culture        string    `yaml:"culture"`
	PublicKeyToken string    `yaml:"publicKeyToken"`
	Hidden         []string  `yaml:"hidden"`
	Types          []TypeDoc `yaml:"types"`
}

// TypeDoc describes one type and its members. Type references are full
// names ("System.Int32", "demo.Outer+Inner").
type TypeDoc struct {
	Namespace    string        `yaml:"namespace"`
	Name         string        `yaml:"name"`
	Base         string        `yaml:"base"`
	Element      string        `yaml:"element"`
	Interfaces   []string      `yaml:"interfaces"`
	Interface    bool          `yaml:"interface"`
	ValueType    bool          `yaml:"valueType"`
	Generic      bool          `yaml:"generic"`
	NonPublic    bool          `yaml:"nonPublic"`
	Attributes   []string      `yaml:"attributes"`
	Hidden       []string      `yaml:"hidden"`
	Fields       []FieldDoc    `yaml:"fields"`
	Methods      []MethodDoc   `yaml:"methods"`
	Constructors []CtorDoc     `yaml:"constructors"`
	Properties   []PropertyDoc `yaml:"properties"`
	Events       []EventDoc    `yaml:"events"`
	Nested       []TypeDoc     `yaml:"nested"`
}

// FieldDoc describes a field. A non-nil Const makes it a literal.
type FieldDoc struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Static     bool     `yaml:"static"`
	NonPublic  bool     `yaml:"nonPublic"`
	InitOnly   bool     `yaml:"initOnly"`
	Const      any      `yaml:"const"`
	Initial    any      `yaml:"initial"`
	Attributes []string `yaml:"attributes"`
	Hidden     []string `yaml:"hidden"`
}

// ParamDoc describes a parameter.
type ParamDoc struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional"`
	Default  any    `yaml:"default"`
}

// MethodDoc describes a method. Overrides names a method of a base type.
type MethodDoc struct {
	Name       string     `yaml:"name"`
	Returns    string     `yaml:"returns"`
	Params     []ParamDoc `yaml:"params"`
	Static     bool       `yaml:"static"`
	NonPublic  bool       `yaml:"nonPublic"`
	Abstract   bool       `yaml:"abstract"`
	Overrides  string     `yaml:"overrides"`
	Attributes []string   `yaml:"attributes"`
	Hidden     []string   `yaml:"hidden"`
}

// CtorDoc describes a constructor.
type CtorDoc struct {
	Params    []ParamDoc `yaml:"params"`
	NonPublic bool       `yaml:"nonPublic"`
	Hidden    []string   `yaml:"hidden"`
}

// PropertyDoc describes an auto-implemented property.
type PropertyDoc struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Get       bool     `yaml:"get"`
	Set       bool     `yaml:"set"`
	Static    bool     `yaml:"static"`
	NonPublic bool     `yaml:"nonPublic"`
	Hidden    []string `yaml:"hidden"`
}

// EventDoc describes an event.
type EventDoc struct {
	Name    string `yaml:"name"`
	Handler string `yaml:"handler"`
}

// Load decodes a YAML or JSON document from r into a new provider.
func Load(r io.Reader) (*Provider, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}
	p := New()
	if err := p.Apply(doc); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) (*Provider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Apply adds the document's model to p. Types are declared in a first pass
// so references may point forward.
func (p *Provider) Apply(doc Document) error {
	type pending struct {
		t   *Type
		doc *TypeDoc
	}
	var all []pending

	var declare func(a *Assembly, outer *Type, d *TypeDoc) error
	declare = func(a *Assembly, outer *Type, d *TypeDoc) error {
		if d.Name == "" {
			return fmt.Errorf("%w: type without a name in %s", ErrBadDocument, a.name)
		}
		var t *Type
		if outer == nil {
			t = a.Type(d.Namespace, d.Name)
		} else {
			t = outer.DefineNested(d.Name)
		}
		all = append(all, pending{t: t, doc: d})
		for i := range d.Nested {
			if err := declare(a, t, &d.Nested[i]); err != nil {
				return err
			}
		}
		return nil
	}

	for i := range doc.Assemblies {
		ad := &doc.Assemblies[i]
		if ad.Name == "" {
			return fmt.Errorf("%w: assembly without a name", ErrBadDocument)
		}
		a := p.Assembly(ad.Name).SetVersion(ad.Version).SetCulture(ad.Culture).Hide(ad.Hidden...)
		if ad.PublicKeyToken != "" {
			token, err := hex.DecodeString(ad.PublicKeyToken)
			if err != nil {
				return fmt.Errorf("%w: assembly %s public key token: %w", ErrBadDocument, ad.Name, err)
			}
			a.SetPublicKeyToken(token)
		}
		for j := range ad.Types {
			if err := declare(a, nil, &ad.Types[j]); err != nil {
				return err
			}
		}
	}

	for _, pt := range all {
		if err := p.define(pt.t, pt.doc); err != nil {
			return err
		}
	}
	return nil
}

// ref resolves a type reference; "" is no type.
func (p *Provider) ref(name string) (*Type, error) {
	if name == "" {
		return nil, nil
	}
	t, ok := p.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown type reference %q", ErrBadDocument, name)
	}
	return t, nil
}

func (p *Provider) params(docs []ParamDoc) ([]ParamSpec, error) {
	out := make([]ParamSpec, len(docs))
	for i, d := range docs {
		t, err := p.ref(d.Type)
		if err != nil {
			return nil, err
		}
		out[i] = Param(d.Name, t)
		if d.Optional {
			out[i] = out[i].Default(d.Default)
		}
	}
	return out, nil
}

func (p *Provider) define(t *Type, d *TypeDoc) error {
	var err error
	if t.base, err = p.ref(d.Base); err != nil {
		return err
	}
	if t.elem, err = p.ref(d.Element); err != nil {
		return err
	}
	for _, name := range d.Interfaces {
		i, err := p.ref(name)
		if err != nil {
			return err
		}
		t.Implements(i)
	}
	t.isIface, t.isValue, t.isGeneric = d.Interface, d.ValueType, d.Generic
	t.public = !d.NonPublic
	t.Attr(d.Attributes...).Hide(d.Hidden...)

	for _, fd := range d.Fields {
		ft, err := p.ref(fd.Type)
		if err != nil {
			return err
		}
		f := t.DefineField(fd.Name, ft).Attr(fd.Attributes...).Hide(fd.Hidden...)
		f.static, f.public, f.initOnly = fd.Static, !fd.NonPublic, fd.InitOnly
		if fd.Const != nil {
			f.Const(fd.Const)
		}
		if fd.Initial != nil {
			f.Initial(fd.Initial)
		}
	}

	for _, md := range d.Methods {
		rt, err := p.ref(md.Returns)
		if err != nil {
			return err
		}
		ps, err := p.params(md.Params)
		if err != nil {
			return err
		}
		m := t.DefineMethod(md.Name, rt, ps...).Attr(md.Attributes...).Hide(md.Hidden...)
		m.static, m.public, m.abstract = md.Static, !md.NonPublic, md.Abstract
		if md.Overrides != "" {
			base := findMethod(t.base, md.Overrides)
			if base == nil {
				return fmt.Errorf("%w: %s overrides unknown method %q", ErrBadDocument, m.id, md.Overrides)
			}
			m.Overrides(base)
		}
	}

	for _, cd := range d.Constructors {
		ps, err := p.params(cd.Params)
		if err != nil {
			return err
		}
		c := t.DefineConstructor(ps...).Hide(cd.Hidden...)
		c.public = !cd.NonPublic
	}

	for _, pd := range d.Properties {
		pt, err := p.ref(pd.Type)
		if err != nil {
			return err
		}
		prop := t.DefineProperty(pd.Name, pt).Hide(pd.Hidden...)
		prop.public = !pd.NonPublic
		if pd.Static {
			prop.Static()
		}
		prop.Auto(pd.Get, pd.Set)
	}

	for _, ed := range d.Events {
		ht, err := p.ref(ed.Handler)
		if err != nil {
			return err
		}
		t.DefineEvent(ed.Name, ht)
	}
	return nil
}

func findMethod(t *Type, name string) *Method {
	for cur := t; cur != nil; cur = cur.base {
		for _, m := range cur.methods {
			if m.name == name {
				return m
			}
		}
	}
	return nil
}

// Auto binds compiler-style accessors backed by storage: a field of the
// target object for instance properties, a private slot for static ones.
func (p *Property) Auto(get, set bool) *Property {
	key := "<" + p.name + ">k__BackingField"
	var (
		mu   sync.RWMutex
		slot any
	)
	if get {
		p.Get(func(target any, _ []any) (any, error) {
			if o, ok := target.(*Object); ok {
				return o.Get(key), nil
			}
			mu.RLock()
			defer mu.RUnlock()
			return slot, nil
		})
	}
	if set {
		p.Set(func(target any, value any, _ []any) error {
			if o, ok := target.(*Object); ok {
				o.Set(key, value)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			slot = value
			return nil
		})
	}
	return p
}
