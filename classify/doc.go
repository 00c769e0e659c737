// Package classify labels reconstructed table rows as header, data,
// summary, footnote, caption, or broken. Two implementations sit behind
// one Classifier contract: a learned classifier backed by a previously
// trained artifact, and a rule-based classifier. A hybrid decorator tries
// the learned path and degrades to the rules per row on any failure.
package classify
