package main

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"field-mapper/store"
	"field-mapper/warehouse"
)

// catalog lists the struct types the CLI can inspect, keyed by reflect.Type.String().
var catalog = buildCatalog(
	reflect.TypeFor[store.Audit](),
	reflect.TypeFor[store.User](),
	reflect.TypeFor[store.Order](),
	reflect.TypeFor[store.OrderItem](),
	reflect.TypeFor[store.Reading](),
	reflect.TypeFor[warehouse.Record](),
	reflect.TypeFor[warehouse.Client](),
	reflect.TypeFor[warehouse.Order](),
	reflect.TypeFor[warehouse.Item](),
	reflect.TypeFor[warehouse.Gauge](),
)

func buildCatalog(types ...reflect.Type) map[string]reflect.Type {
	m := make(map[string]reflect.Type, len(types))
	for _, t := range types {
		m[t.String()] = t
	}

	return m
}

func catalogNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// lookupType accepts "store.User" or a case-insensitive match of it.
func lookupType(name string) (reflect.Type, error) {
	if t, ok := catalog[name]; ok {
		return t, nil
	}

	for key, t := range catalog {
		if strings.EqualFold(key, name) {
			return t, nil
		}
	}

	return nil, fmt.Errorf("unknown type %q (see 'field-mapper types')", name)
}
