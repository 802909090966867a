// doc.go — package documentation for xgx-error-suppress
//
// Package xgxsuppress records secondary ("suppressed") errors against a
// primary error and closes resources without losing either failure. Callers
// always use one contract:
//
//   - AddSuppressed(receiver, suppressed)
//   - GetSuppressed(receiver)
//   - PrintStackTrace(receiver, w)
//   - CloseResource(primary, resource)
//
// # Strategies
//
// A Strategy is selected once, at Init, from the platform capability level
// reported by a Probe and from Config:
//
//	+-----------------------------+-----------+--------------------------------+
//	| Condition                   | Strategy  | Where suppressions live        |
//	+-----------------------------+-----------+--------------------------------+
//	| level >= 19                 | native    | the error's own Suppressor     |
//	| level < 19                  | emulated  | weak-keyed side table          |
//	| level < 19 + opt-out flag   | disabled  | nowhere (no-op)                |
//	| detection failed            | disabled  | nowhere; failure is logged     |
//	+-----------------------------+-----------+--------------------------------+
//
// Errors created by this package implement Suppressor. Under the native
// strategy, foreign errors (errors.New, fmt.Errorf, ...) are served by the
// side table so the contract holds for every receiver.
//
// # Side table
//
// The side table never keeps an error alive. Keys hold heap errors through
// weak.Pointer and register a runtime.AddCleanup callback; when an error is
// collected its key is queued, and the next operation on the table removes
// the entry. There is no background goroutine.
//
// Errors without an observable lifetime (package-level variables placed by
// the linker, comparable value types such as syscall.Errno) are keyed by
// value and stay tracked for the life of the process.
//
// # Closing resources
//
//	func copyFile(dst, src string) (err error) {
//	    in, err := os.Open(src)
//	    if err != nil {
//	        return err
//	    }
//	    defer xgxsuppress.CloseInto(&err, in)
//	    ...
//	}
//
// A failing Close never replaces the error already in flight: it is recorded
// as suppressed by it. A resource with no Close method at all is a
// programming error and panics with an assertion failure.
//
// # Setup
//
//	rt := xgxsuppress.Init(
//	    xgxsuppress.WithLogger(logger),
//	    xgxsuppress.WithProbe(xgxsuppress.EnvProbe("")),
//	)
//
// Until Init runs, the package-level functions behave as the disabled
// strategy. Tests should prefer NewRuntime, which installs nothing.
package xgxsuppress
