// Command docsim compares two documents from the command line.
//
// It prints the LCS, Levenshtein and cosine scores of the two documents,
// their mean, and a low/moderate/high classification, and keeps a history
// of past comparisons in SQLite.
package main
