// Package search implements the debounced search-as-you-type pipeline used by every search box in songrec.
//
// # Flow
//
// [Pipeline.Input] is called with the full text on every edit. After a pause of the configured delay
// (300ms by default) one search is issued through the injected [Searcher]. The outcome is handed to the
// injected [Renderer] as a [Result].
//
// # Ordering
//
// Each issued search is tagged with a sequence number. A response is applied only if its tag is still the
// latest, so a slow response to an older query can never overwrite a newer one. Emptying the query,
// selecting a result or dismissing the list also advance the sequence, which drops anything in flight.
// Superseded requests have their context cancelled, but correctness relies only on the tag check.
//
// # Failures
//
// Searcher errors are logged and rendered as [Failed] with the previous list attached, so renderers can
// keep what was shown and add a quiet indicator instead of interrupting typing. Nothing escapes the pipeline.
package search
