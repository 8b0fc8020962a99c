package main

import (
	"context"
	"errors"
	"testing"

	errs "github.com/matzehuels/seqalign/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", errs.Wrap(errs.ErrCodeTimeout, context.Canceled, "stopped"), exitInterrupted},
		{"bad sequence", errs.New(errs.ErrCodeInvalidSequence, "x"), exitUsage},
		{"too many alignments", errs.New(errs.ErrCodeTooManyAlignments, "x"), exitUsage},
		{"storage", errs.New(errs.ErrCodeStorage, "x"), exitError},
		{"plain", errors.New("x"), exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
