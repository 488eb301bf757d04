// Package tjson implements TJSON, a tagged JSON microformat.
//
// TJSON keeps JSON's lexical syntax but annotates every object member
// name with a short type tag, so a reader can recover value kinds that
// plain JSON erases:
//
//	{
//	  "array-example:A<O>": [
//	    {
//	      "string-example:s": "foobar",
//	      "binary-example:d": "QklOQVJZ",
//	      "float-example:f": 0.42,
//	      "int-example:i": "42",
//	      "timestamp-example:t": "2016-11-06T22:27:34Z",
//	      "boolean-example:b": true
//	    }
//	  ],
//	  "set-example:S<i>": [1, 2, 3]
//	}
//
// # Data Model
//
// Scalars: bool, data (binary, base64 on the wire), number (signed int,
// unsigned int, or finite float), string, timestamp (UTC).
// Containers: array, set (unique elements), object (unique string keys).
// Undefined marks absence; TJSON has no null and rejects the literal.
//
// # Tags
//
// A member name "count:u" carries the base name "count" and the tag "u".
// Scalar tags: b bool, d data, f float, i signed int, u unsigned int,
// s string, t timestamp. Composite tags: A<T> array of T, S<T> set of T,
// where T may be O for "nested object". Object members are structurally
// evident and carry no tag; array members carry A<T> when a uniform
// element tag exists and decode structurally otherwise.
//
// # Entry Points
//
// Parse, Unmarshal and DecodeFrom materialize a Value tree from text.
// Emit, EmitPretty, Marshal, MarshalIndent and EncodeTo render a Value
// tree back to canonical text. Walk and Builder expose the event
// protocol used by typed-record façades. MarshalCBOR/UnmarshalCBOR give
// a deterministic binary carriage, MarshalCompressed a zstd-framed one.
//
// # Ordering
//
// Maps and sets are ordered containers. The order policy (byte-wise
// sorted or insertion order) is chosen at construction and affects
// iteration only; equality is always order-independent.
package tjson
