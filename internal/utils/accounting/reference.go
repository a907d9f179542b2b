package accounting

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	referencePrefix     = "TRX"
	referenceDateLayout = "20060102"
)

// ReferenceNumber formats a journal entry reference for a date and a per-day
// sequence: TRX-YYYYMMDD-NNNN.
func ReferenceNumber(date time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", referencePrefix, date.Format(referenceDateLayout), seq)
}

// ReferencePrefixFor returns the shared prefix of all reference numbers on the
// given date, including the trailing separator.
func ReferencePrefixFor(date time.Time) string {
	return fmt.Sprintf("%s-%s-", referencePrefix, date.Format(referenceDateLayout))
}

// SequenceFromReference extracts the numeric sequence from a reference number.
// Malformed references yield an error rather than a silent zero.
func SequenceFromReference(ref string) (int, error) {
	idx := strings.LastIndex(ref, "-")
	if idx < 0 || idx == len(ref)-1 {
		return 0, fmt.Errorf("malformed reference number %q", ref)
	}
	seq, err := strconv.Atoi(ref[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed reference number %q: %w", ref, err)
	}
	return seq, nil
}
