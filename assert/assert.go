package assert

import "github.com/oomph-ac/lockstep/oerror"

// IsTrue panics with a formatted error if ok is false. It is only meant for invariants that
// are checked while constructing state, never on the per-tick path.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
