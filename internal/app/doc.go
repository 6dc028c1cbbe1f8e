// Package app is the composition root: it turns a Config into a loaded
// catalogue and a configured Resolver, and runs one resolution pass.
package app
