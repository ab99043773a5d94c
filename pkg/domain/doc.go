// Package domain contains the entities exchanged between the validation gate,
// its storage adapters and the HTTP layer: submissions, stored records,
// duplicate sets and the outcome of a validation. They carry no
// infrastructure concerns so every layer can share them.
package domain
