// Package event is a double-buffered event queue: writers append to one
// buffer while readers iterate the other, so neither side ever mutates
// what the other is iterating. Flip swaps them. Events carry no owning
// references — text payloads are indices into a shared arena resolved
// against the read buffer at read time, valid only until the next flip.
package event
