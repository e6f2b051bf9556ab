// Package export writes lattice models in interchange formats.
//
// Every writer takes an Encoder, so the same document can be produced as
// YAML, JSON, CBOR or MessagePack:
//
//	enc, _ := export.ForFormat("yaml")
//	paths, err := export.WriteMachine("out", model, enc)
//
// A YAML machine directory written by WriteMachine is read back by
// loader.LoadMachine.
package export
