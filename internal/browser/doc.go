// Package browser builds page interaction primitives on top of the
// protocol dispatcher: navigation, selector queries, synthetic input,
// script evaluation, polling waits, and screenshots.
//
// Node ids are ephemeral handles into the currently loaded document.
// Every primitive re-resolves its selector against a freshly fetched
// document root; nothing here caches a node across a navigation.
package browser
