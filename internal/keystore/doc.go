// Package keystore turns PEM certificate and private key text into an
// ephemeral, password-protected credential store on disk.
//
// With a private key the store holds one key entry at the requested alias,
// bound to the full certificate chain. Without a key it is a trust store
// with one certificate entry per chain element, aliased "<alias>-<i>".
//
// Every call generates a new password and a new temporary file. The caller
// owns the file and must remove it; Artifact.Remove is provided for that.
package keystore
