// Package msgplus encodes and decodes arbitrary dynamic values to and from
// the MessagePack binary wire format, as defined 2017-04-13.
//
// A Value is a tagged union over the eleven MessagePack families. Producers
// build a Value tree and hand it to an Encoder to get bytes; consumers pull
// bytes through a Source and get a Value tree back from a Decoder. Map
// values are backed by an ordered map (see the orderedmap subpackage)
// because MessagePack maps are ordered sequences of key/value pairs, not
// hash tables.
//
// The package is single-threaded and synchronous: neither Encoder nor
// Decoder blocks on its own, only the Source/Sink call the caller supplies
// does. Distinct Values and distinct Encoder/Decoder calls against distinct
// sources/sinks are safe to use concurrently from different goroutines;
// concurrent mutation of one Value from multiple goroutines is not.
package msgplus
