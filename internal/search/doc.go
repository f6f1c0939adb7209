// Package search implements the in-memory article search index.
//
// An Index is an immutable value produced by Build from a corpus snapshot.
// Each article becomes one document with a weighted field per (kind,
// locale), named like "title.ja" or "body.en". Queries are matched
// fuzzily against every field; scores fall in [0,1] and lower is more
// relevant. Use domain.MoreRelevant to compare results.
//
// Updating the corpus means building a new Index and swapping it in;
// an Index is never mutated after Build returns.
package search
