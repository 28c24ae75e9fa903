// Package mpack provides streaming MessagePack serialization for
// dictionaries.
//
// A dictionary file is a plain concatenation of top-level MessagePack maps
// ("fragments"). The format is self-describing: no framing, no index, each
// fragment carries its own length information.
//
// # Usage
//
// Decode a stream one fragment at a time:
//
//	dec := mpack.NewDecoder(data)
//	for {
//	    frag, err := dec.NextDictionary()
//	    if errors.Is(err, mpack.ErrNoMoreFragments) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // Process fragment...
//	}
//
// A Decoder consumes its buffer exactly once; create a new one to re-read.
// Mark reports the offset behind the last decoded fragment, which followers
// persist to resume a growing file at a fragment boundary.
package mpack
