package qrlink

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query parameter names are part of the external deep-link contract: the
// customer view is routed by the presence of cid (tenant) and mesa (table).
const (
	ParamTenant = "cid"
	ParamTable  = "mesa"
)

// TableURL formats the deep link a table's QR code points at
func TableURL(baseURL string, tenantID int64, tableID string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}

	q := u.Query()
	q.Set(ParamTenant, strconv.FormatInt(tenantID, 10))
	q.Set(ParamTable, tableID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseTableURL extracts the tenant and table ids back out of a deep link
func ParseTableURL(link string) (int64, string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return 0, "", fmt.Errorf("invalid link: %w", err)
	}

	q := u.Query()
	tenantID, err := strconv.ParseInt(q.Get(ParamTenant), 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid %s parameter: %w", ParamTenant, err)
	}

	tableID := q.Get(ParamTable)
	if tableID == "" {
		return 0, "", fmt.Errorf("%s parameter is required", ParamTable)
	}
	return tenantID, tableID, nil
}

// FileName is the download name offered for a table's QR image
func FileName(tableID string) string {
	return fmt.Sprintf("qr_mesa_%s.png", tableID)
}
