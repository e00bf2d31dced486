// Package analytics computes statistics over parsed transcript records.
//
// Every function takes a slice that has already been narrowed to the selected
// user with Scope, never mutates it, and returns a fresh value. Empty input
// yields empty slices and zero counts rather than errors.
package analytics
