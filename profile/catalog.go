// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package profile

import (
	_ "embed"
	"fmt"

	"github.com/valyala/fastjson"
)

//go:embed profiles.json
var builtinCatalog []byte

// Catalog is a named set of profiles loaded from a JSON document shaped
// like:
//
//	{
//	  "default": "berlin-no-r",
//	  "profiles": [
//	    {"name": "berlin-s", "agencies": ["..."], "kind": "suburban-railway"},
//	    {"name": "berlin-brandenburg", "agencies": [], "kind": "all"}
//	  ]
//	}
type Catalog struct {
	defaultName string
	names       []string
	byName      map[string]Profile
}

// ParseCatalog reads a profile catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var parser fastjson.Parser
	root, err := parser.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("profile: invalid catalog: %w", err)
	}

	c := &Catalog{
		defaultName: string(root.GetStringBytes("default")),
		byName:      make(map[string]Profile),
	}

	for _, item := range root.GetArray("profiles") {
		name := string(item.GetStringBytes("name"))
		if name == "" {
			return nil, fmt.Errorf("profile: catalog entry missing a name")
		}
		kind, err := parseKindFilter(string(item.GetStringBytes("kind")))
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		var agencies []string
		for _, a := range item.GetArray("agencies") {
			agencies = append(agencies, string(a.GetStringBytes()))
		}
		c.names = append(c.names, name)
		c.byName[name] = Profile{Name: name, Agencies: agencies, Kind: kind}
	}

	if c.defaultName != "" {
		if _, ok := c.byName[c.defaultName]; !ok {
			return nil, fmt.Errorf("profile: default %q is not a catalog entry", c.defaultName)
		}
	}

	return c, nil
}

// DefaultCatalog parses the built-in catalog shipped with this package,
// covering the Berlin and Berlin-Brandenburg profiles the core pipeline
// ships with out of the box.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(builtinCatalog)
}

// Get looks up a profile by name.
func (c *Catalog) Get(name string) (Profile, error) {
	p, ok := c.byName[name]
	if !ok {
		return Profile{}, &UnknownProfileError{Name: name}
	}
	return p, nil
}

// Default returns the catalog's default profile, or false if the catalog
// document did not name one.
func (c *Catalog) Default() (Profile, bool) {
	if c.defaultName == "" {
		return Profile{}, false
	}
	p := c.byName[c.defaultName]
	return p, true
}

// Names lists every profile name in the catalog, in document order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}
