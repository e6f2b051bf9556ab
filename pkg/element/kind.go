package element

import "strings"

//go:generate go run ../../cmd/nala-kindgen -input kinds.yaml -output kind_gen.go

// DefaultModel is the hardware model of kinds without a specific one.
const DefaultModel = "Generic"

// Kind is the default taxonomy of one hardware type.
type Kind struct {
	Type        string
	Class       string
	Model       string
	Aliases     []string
	Description string
}

var kindsByName = buildKindIndex()

func buildKindIndex() map[string]Kind {
	idx := make(map[string]Kind, len(kindTable)*2)
	for _, k := range kindTable {
		idx[strings.ToLower(k.Type)] = k
		for _, a := range k.Aliases {
			idx[strings.ToLower(a)] = k
		}
	}
	return idx
}

// LookupKind returns the kind for a hardware type or one of its aliases.
// Matching is case-insensitive.
func LookupKind(hardwareType string) (Kind, bool) {
	k, ok := kindsByName[strings.ToLower(hardwareType)]
	return k, ok
}

// Kinds returns all known kinds in table order.
func Kinds() []Kind {
	out := make([]Kind, len(kindTable))
	copy(out, kindTable)
	return out
}

// TypesOfClass returns the hardware types whose default class is class.
func TypesOfClass(class string) []string {
	var out []string
	for _, k := range kindTable {
		if strings.EqualFold(k.Class, class) {
			out = append(out, k.Type)
		}
	}
	return out
}
