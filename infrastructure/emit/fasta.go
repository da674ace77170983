// Package emit renders built constructs into FASTA documents and the
// JSON manifests consumed by the downstream prediction pipeline.
package emit

import "strings"

// FASTA renders one sequence as a FASTA document. A width of zero or
// less writes the whole sequence on a single line; a positive width
// wraps it into fixed-length columns.
func FASTA(header, sequence string, width int) []byte {
	var b strings.Builder
	b.Grow(len(header) + len(sequence) + lineCount(len(sequence), width) + 2)
	b.WriteByte('>')
	b.WriteString(header)
	b.WriteByte('\n')
	if width <= 0 {
		b.WriteString(sequence)
		b.WriteByte('\n')
		return []byte(b.String())
	}
	for i := 0; i < len(sequence); i += width {
		b.WriteString(sequence[i:min(i+width, len(sequence))])
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func lineCount(n, width int) int {
	if width <= 0 || n == 0 {
		return 1
	}
	return (n + width - 1) / width
}
