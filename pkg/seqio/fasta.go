package seqio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"

	"github.com/matzehuels/seqalign/pkg/align"
	errs "github.com/matzehuels/seqalign/pkg/errors"
)

// Record is one named sequence.
type Record struct {
	Name        string
	Description string
	Sequence    string
}

// Label returns the record name, or fallback when the record has none.
func (r Record) Label(fallback string) string {
	if r.Name != "" {
		return r.Name
	}
	return fallback
}

// Normalize uppercases s and drops all whitespace.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
}

// ReadFASTA reads every record from r. Input that does not start with a
// '>' header is read as a single unnamed record of raw sequence lines.
func ReadFASTA(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if first != '>' {
		raw, err := io.ReadAll(br)
		if err != nil {
			return nil, err
		}
		return []Record{{Sequence: Normalize(string(raw))}}, nil
	}

	var recs []Record
	fr := fasta.NewReader(br, linear.NewSeq("", nil, alphabet.Protein))
	for {
		s, err := fr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fasta: %w", err)
		}
		recs = append(recs, Record{
			Name:        s.Name(),
			Description: s.Description(),
			Sequence:    Normalize(letters(s)),
		})
	}
	return recs, nil
}

func letters(s seq.Sequence) string {
	var b strings.Builder
	b.Grow(s.Len())
	for i := 0; i < s.Len(); i++ {
		b.WriteByte(byte(s.At(i).L))
	}
	return b.String()
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(rune(c)) {
			return c, br.UnreadByte()
		}
	}
}

// Resolve turns arg into a sequence. If arg names an existing regular file
// the first FASTA record of that file is returned; otherwise arg itself is
// the sequence. The result is validated with [errs.ValidateSequence].
func Resolve(arg string) (Record, error) {
	rec, err := resolve(arg)
	if err != nil {
		return Record{}, err
	}
	if err := errs.ValidateSequence(rec.Sequence); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func resolve(arg string) (Record, error) {
	info, err := os.Stat(arg)
	if err != nil || !info.Mode().IsRegular() {
		return Record{Sequence: Normalize(arg)}, nil
	}

	f, err := os.Open(arg)
	if err != nil {
		return Record{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", arg)
	}
	defer f.Close()

	recs, err := ReadFASTA(f)
	if err != nil {
		return Record{}, errs.Wrap(errs.ErrCodeInvalidSequence, err, "read %s", arg)
	}
	if len(recs) == 0 {
		return Record{}, errs.New(errs.ErrCodeInvalidSequence, "%s contains no sequence", arg)
	}
	rec := recs[0]
	if rec.Name == "" {
		rec.Name = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
	}
	return rec, nil
}

// ErrEmptyAlignment is returned by [WriteFASTA] when there is nothing to write.
var ErrEmptyAlignment = errors.New("no alignments to write")

// WriteFASTA writes each alignment as two gapped FASTA records named after
// leftName and topName, suffixed with the alignment number when there is
// more than one. Lines wrap at 60 columns.
func WriteFASTA(w io.Writer, leftName, topName string, alns []align.Alignment) error {
	if len(alns) == 0 {
		return ErrEmptyAlignment
	}
	fw := fasta.NewWriter(w, 60)
	for i, a := range alns {
		ln, tn := leftName, topName
		if len(alns) > 1 {
			ln, tn = fmt.Sprintf("%s_%d", ln, i+1), fmt.Sprintf("%s_%d", tn, i+1)
		}
		for _, s := range []*linear.Seq{
			linear.NewSeq(ln, alphabet.BytesToLetters([]byte(a.Left)), alphabet.Protein),
			linear.NewSeq(tn, alphabet.BytesToLetters([]byte(a.Top)), alphabet.Protein),
		} {
			if _, err := fw.Write(s); err != nil {
				return fmt.Errorf("fasta: %w", err)
			}
		}
	}
	return nil
}
