package accounting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbooks/school_finance_app/internal/utils/accounting"
)

func TestReferenceNumber(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "TRX-20260314-0001", accounting.ReferenceNumber(date, 1))
	assert.Equal(t, "TRX-20260314-0042", accounting.ReferenceNumber(date, 42))
	// Sequences past 9999 widen rather than wrap.
	assert.Equal(t, "TRX-20260314-10000", accounting.ReferenceNumber(date, 10000))
}

func TestReferencePrefixFor(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "TRX-20260314-", accounting.ReferencePrefixFor(date))
}

func TestSequenceFromReference(t *testing.T) {
	seq, err := accounting.SequenceFromReference("TRX-20260314-0042")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)
}

func TestSequenceFromReference_Malformed(t *testing.T) {
	for _, ref := range []string{"", "TRX", "TRX-20260314-", "TRX-20260314-00x1"} {
		_, err := accounting.SequenceFromReference(ref)
		assert.Error(t, err, "reference %q", ref)
	}
}

func TestReferenceRoundTrip(t *testing.T) {
	date := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	ref := accounting.ReferenceNumber(date, 117)
	seq, err := accounting.SequenceFromReference(ref)
	require.NoError(t, err)
	assert.Equal(t, 117, seq)
}
