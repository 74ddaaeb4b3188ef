// Package seed packs an encounter's stat envelope into a single integer.
//
// A seed carries four fields, most significant first:
//
//	bits 38..63  timestamp   event identifier >> 38
//	bit  37      hp flag     1 when the range prefers hp, 0 for diplomacy
//	bits 23..36  min stat    14 bits
//	bits  9..22  max stat    14 bits
//	bits  0..8   win percent round(win * 100), 0-100
//
// The layout is the compatibility contract for every seed that has ever been
// displayed or stored. Changing a shift changes the randomness of every past
// encounter.
//
// Because the timestamp sits in the upper bits, seeds for later events sort
// after seeds for earlier ones. The low 38 bits of the event identifier are
// discarded and cannot be recovered from a seed.
package seed
