package invoices

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPence(t *testing.T) {
	cases := map[int64]string{
		125000:   "£1,250.00",
		50:       "£0.50",
		99999:    "£999.99",
		0:        "£0.00",
		42500000: "£425,000.00",
	}
	for pence, want := range cases {
		require.Equal(t, want, FormatPence(pence), "pence=%d", pence)
	}
}
