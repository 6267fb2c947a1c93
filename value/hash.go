package value

import "github.com/spaolacci/murmur3"

// HashIdent computes the Murmur32 hash used for every identifier lookup in
// the runtime (globals, properties, methods, enum members, namespaces).
// A side token map kept by the compiler/script manager retains the
// original text for diagnostics; the hash alone is what's compared at
// runtime, per §3.2.
func HashIdent(name string) uint32 {
	return murmur3.Sum32([]byte(name))
}
