// Package ports defines the interfaces that the alert store and the BI
// platform adapters implement, so application services can be tested with
// mock implementations.
package ports
