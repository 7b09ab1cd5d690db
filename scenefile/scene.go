// Package scenefile builds entity trees from YAML scene descriptions.
//
// A scene lists the systems to register and a tree of entities, each with
// props, components and children:
//
//	systems:
//	  - type: spin-control
//	    props: {multiplier: 2}
//	entities:
//	  - key: world
//	    components:
//	      - type: transform
//	    children:
//	      - key: cube
//	        repeat: 10
//	        props: {position: {x: 1}}
//	        components:
//	          - type: spinning
//	            props: {speed: 0.01}
package scenefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownComponent = errors.New("scenefile: unknown component type")
	ErrUnknownSystem    = errors.New("scenefile: unknown system type")
)

// Scene is the decoded form of a scene file.
type Scene struct {
	Systems  []SystemSpec `yaml:"systems"`
	Entities []EntitySpec `yaml:"entities"`
}

type SystemSpec struct {
	Type  string         `yaml:"type"`
	Props map[string]any `yaml:"props,omitempty"`
}

type EntitySpec struct {
	Key        string          `yaml:"key,omitempty"`
	Repeat     int             `yaml:"repeat,omitempty"`
	Props      map[string]any  `yaml:"props,omitempty"`
	Components []ComponentSpec `yaml:"components,omitempty"`
	Children   []EntitySpec    `yaml:"children,omitempty"`
}

type ComponentSpec struct {
	Type     string         `yaml:"type"`
	Disabled bool           `yaml:"disabled,omitempty"`
	Props    map[string]any `yaml:"props,omitempty"`
}

// LoadYAML loads a scene from a YAML reader.
func LoadYAML(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenefile: decode: %w", err)
	}
	return &s, nil
}

// LoadFile loads a scene from a YAML file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}

// Validate checks that every type named by the scene is known to reg.
func (s *Scene) Validate(reg *Registry) error {
	for _, sys := range s.Systems {
		if _, ok := reg.systems[sys.Type]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSystem, sys.Type)
		}
	}
	var check func(specs []EntitySpec) error
	check = func(specs []EntitySpec) error {
		for _, e := range specs {
			for _, c := range e.Components {
				if _, ok := reg.components[c.Type]; !ok {
					return fmt.Errorf("%w: %q on entity %q", ErrUnknownComponent, c.Type, e.Key)
				}
			}
			if err := check(e.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return check(s.Entities)
}

// EntityCount returns the number of entities the scene creates, repeats
// included.
func (s *Scene) EntityCount() int {
	var count func(specs []EntitySpec) int
	count = func(specs []EntitySpec) int {
		n := 0
		for _, e := range specs {
			n += max(e.Repeat, 1) * (1 + count(e.Children))
		}
		return n
	}
	return count(s.Entities)
}
