package valueobject

import (
	"fmt"
	"time"
)

// DisplayDateLayout is the layout used for dates in read responses.
const DisplayDateLayout = "Jan 02 2006"

// FormatReportLabel renders a report sequence as Rep#NNN. Sequences past 999
// keep growing in width.
func FormatReportLabel(sequence int64) string {
	return fmt.Sprintf("Rep#%03d", sequence)
}

// DisplayDate formats t for read responses.
func DisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// TransactionDisplayID renders the short identifier shown on wallet entries.
func TransactionDisplayID(recordID string) string {
	if len(recordID) > 6 {
		recordID = recordID[:6]
	}
	return "#transaction_" + recordID
}
