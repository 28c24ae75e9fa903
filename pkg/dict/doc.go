// Package dict provides a nested dictionary of scalars, the in-memory model
// for MessagePack dictionary streams.
//
// Every node of a Dictionary is either a map of string keys or a scalar
// value (bool, int64, uint64, float64, string or []float64). Three merge
// policies cover the common operations on streams of dictionaries:
//
//   - Merge: shallow last-write-wins union, the policy applied by the
//     stream loader.
//   - Update: deep upsert that recurses into nested maps and type-checks
//     value overwrites.
//   - Extend: insert-only, existing keys are reported back and skipped.
//
// Dictionaries render deterministically (String, MarshalJSON both sort
// keys), so equal dictionaries always produce equal output bytes.
//
// # Usage
//
//	world := dict.New()
//	world.Set("name", "example")
//	world.Set("temperature", 28.0)
//	bodies, _ := world.At("bodies")
//	bodies.Set("position", []float64{0.1, 0.0, 100.0})
//	fmt.Println(world)
//
// Serialization lives in the mpack package to keep this one free of codec
// dependencies.
package dict
