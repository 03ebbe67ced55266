package ordering

import (
	"fmt"
	"strings"
	"time"

	"comanda-system/internal/models"
)

const receiptWidth = 32

// Receipt renders the printable plain-text cupom for a table's tab
func Receipt(tableID string, lines []models.OrderLine, now time.Time) string {
	divider := strings.Repeat("-", receiptWidth)

	var b strings.Builder
	b.WriteString(center("DEMO RESTAURANTE") + "\n")
	b.WriteString(divider + "\n")
	b.WriteString(center(fmt.Sprintf("CONTA MESA: %s", tableID)) + "\n")
	b.WriteString(center(now.Format("02/01/2006 15:04:05")) + "\n")
	b.WriteString(divider + "\n")

	for _, line := range lines {
		b.WriteString(receiptLine(line.ProductName, line.UnitPrice.StringFixed(2)) + "\n")
	}

	b.WriteString(divider + "\n")
	b.WriteString(center(fmt.Sprintf("TOTAL: R$ %s", TabTotal(lines).StringFixed(2))) + "\n")
	b.WriteString(divider + "\n")
	b.WriteString(center("Obrigado pela preferência!") + "\n")
	return b.String()
}

// receiptLine lays out a product name on the left and its price on the right
func receiptLine(name, price string) string {
	maxName := receiptWidth - len(price) - 1
	if len(name) > maxName {
		name = name[:maxName]
	}
	return name + strings.Repeat(" ", receiptWidth-len(name)-len(price)) + price
}

// center pads a label to the middle of the receipt
func center(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	pad := (receiptWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
