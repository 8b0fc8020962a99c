// Package seqio reads input sequences and stores finished alignments.
//
// # Sequence Input
//
// [Resolve] turns a command-line argument into a sequence. An argument that
// names an existing file is read as FASTA and its first record is used;
// anything else is taken as the literal sequence:
//
//	rec, err := seqio.Resolve("query.fa")   // first FASTA record
//	rec, err := seqio.Resolve("cgca")       // literal, becomes "CGCA"
//
// Sequences are uppercased and stripped of whitespace. A file without a
// '>' header line is read as raw sequence lines.
//
// [WriteFASTA] writes gapped alignments back out as FASTA records, one pair
// per alignment.
//
// # Documents
//
// A [Document] is the JSON form of a finished alignment: both sequences,
// the scoring, every cell's score and backlinks in row-major order, and the
// enumerated alignments.
//
//	{
//	  "left": "CGCA",
//	  "top": "CACGTAT",
//	  "scoring": {"match": 1, "mismatch": 0, "gap": -1, "terminal_gap": 0, "mode": "semi-global"},
//	  "rows": 5,
//	  "cols": 8,
//	  "score": 3,
//	  "scores": [0, 0, 0, ...],
//	  "backlinks": [0, 2, 2, ...],
//	  "alignments": [{"left": "--CGCA-", "top": "CACGTAT"}]
//	}
//
// Backlinks are the bitmask values of [align.Backlink]: 1 up, 2 left,
// 4 diagonal. [Document.Matrix] rebuilds the matrix, so a cached document
// can be rendered without filling again.
package seqio
