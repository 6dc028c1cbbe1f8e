// Package processor holds the per-type knowledge that turns bindings into
// properties. Each Processor is mostly data: a mapping table applied to every
// binding of its type, plus an optional hook for work a table cannot express,
// such as composing credential stores.
//
// Processors never talk to the services they describe.
package processor
