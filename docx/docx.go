// Package docx loads DOCX templates into an owned paragraph tree, lets
// callers rewrite paragraph text and writes the result back out through
// unioffice.
package docx
