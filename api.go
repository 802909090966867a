package xgxsuppress

import "io"

// AddSuppressed records suppressed against receiver using the active runtime.
func AddSuppressed(receiver, suppressed error) error {
	return Active().AddSuppressed(receiver, suppressed)
}

// GetSuppressed returns receiver's suppressed errors from the active runtime.
func GetSuppressed(receiver error) []error {
	return Active().GetSuppressed(receiver)
}

// PrintStackTrace prints receiver and its suppressed errors to w, or to
// os.Stderr when w is nil.
func PrintStackTrace(receiver error, w io.Writer) {
	Active().PrintStackTrace(receiver, w)
}

// CloseResource closes resource on behalf of primary using the active runtime.
func CloseResource(primary error, resource any) error {
	return Active().CloseResource(primary, resource)
}

// CloseInto closes resource and folds the outcome into *errp.
func CloseInto(errp *error, resource any) {
	Active().CloseInto(errp, resource)
}

// CloseAll closes resources in reverse order using the active runtime.
func CloseAll(primary error, resources ...any) error {
	return Active().CloseAll(primary, resources...)
}
