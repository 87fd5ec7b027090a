// Package subst resolves $(params.<name>) template expressions in
// pipeline definitions at instantiation time.
//
// Resolution is textual substitution, not expression evaluation: only
// the params reference family is recognized. Any other $(...) form, such
// as task results or workspace paths, fails with UNSUPPORTED_REFERENCE,
// and a reference to an undeclared parameter fails with
// UNBOUND_PARAMETER. Literal values pass through unchanged, so resolving
// an already-resolved value is the identity.
package subst
