// Package cli wires configuration, logging, the history store, the polling
// worker and the dashboard together behind cobra commands.
package cli
