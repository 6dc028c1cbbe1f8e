// Package bindingstore discovers service binding directories and parses
// them into a domain.Bindings catalogue.
//
// A binding root holds one sub-directory per binding. Two on-disk layouts
// are supported and chosen explicitly through configuration:
//
//	flat    <root>/<name>/{type,provider,host,...}
//	legacy  <root>/<name>/metadata/{kind,provider,...} + <root>/<name>/secret/{...}
//
// Loading is all-or-nothing: any malformed binding aborts the load.
package bindingstore
