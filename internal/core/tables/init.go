// Package tables registers the four dataset schemas with the core registry.
// Import this package to ensure all tables are registered before core.Load.
package tables

// This file exists to provide a single import point.
// Each table file uses init() to register its table.
