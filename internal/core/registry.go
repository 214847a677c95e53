package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	tableRegistry  = make(map[string]TableSpec)
	reportRegistry = make(map[string]ReportDefinition)
	registryMu     sync.RWMutex
)

// RegisterTable adds a dataset schema to the registry.
// Panics if a table with the same name is already registered.
func RegisterTable(spec TableSpec) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := tableRegistry[spec.Name]; exists {
		panic(fmt.Sprintf("table already registered: %s", spec.Name))
	}
	if spec.Label == "" {
		spec.Label = spec.Name
	}

	tableRegistry[spec.Name] = spec
}

// LookupTable returns a dataset schema by name.
// Returns false if not found.
func LookupTable(name string) (TableSpec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	spec, ok := tableRegistry[name]
	return spec, ok
}

// Tables returns all registered dataset schemas sorted by name.
func Tables() []TableSpec {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableSpec, 0, len(tableRegistry))
	for _, spec := range tableRegistry {
		result = append(result, spec)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// RegisterReport adds a report to the catalog.
// Panics on a duplicate key or number, or a missing producer.
func RegisterReport(def ReportDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if def.Produce == nil {
		panic(fmt.Sprintf("report has no producer: %s", def.Key))
	}
	if _, exists := reportRegistry[def.Key]; exists {
		panic(fmt.Sprintf("report already registered: %s", def.Key))
	}
	for _, other := range reportRegistry {
		if other.Number == def.Number {
			panic(fmt.Sprintf("report number %d already used by %s", def.Number, other.Key))
		}
		if other.Name == def.Name {
			panic(fmt.Sprintf("report name %q already used by %s", def.Name, other.Key))
		}
	}

	reportRegistry[def.Key] = def
}

// LookupReport returns a report definition by key.
func LookupReport(key string) (ReportDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := reportRegistry[key]
	return def, ok
}

// Reports returns the catalog ordered by report number.
func Reports() []ReportDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ReportDefinition, 0, len(reportRegistry))
	for _, def := range reportRegistry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})

	return result
}

// ReportCount returns the number of registered reports.
func ReportCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(reportRegistry)
}
