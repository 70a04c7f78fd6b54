package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
)

// matchesInvoice reports whether text occurs, ignoring case, in the
// customer email, the amount, the date, the status or the customer name.
func matchesInvoice(row model.InvoicesTableRow, text string) bool {
	needle := strings.ToLower(text)
	fields := [...]string{
		row.Email,
		strconv.FormatInt(row.Amount, 10),
		row.Date.Format(time.DateOnly),
		row.Status.String(),
		row.Name,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
