// Package render converts one locale's article source into display-ready
// output.
//
// A Pipeline runs named stages over a Job:
//
//   - frontmatter: splits the YAML header from the body
//   - markup: renders the body to HTML, rewriting local images into media
//     blocks and numbering headings into a table of contents
//   - readingtime: estimates minutes to read the stripped body
//
// Rendering is deterministic: the same source and caption table always
// yield byte-identical output.
package render
