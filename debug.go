package knit

// debugAssertions gates invariant checks meant only to catch internal
// bugs during development (walker boundary checks, provides_for
// injectivity/surjectivity/monotonicity). It is a plain var rather than a
// build tag so tests can flip it on without a separate build; production
// callers never need to touch it.
var debugAssertions = false
