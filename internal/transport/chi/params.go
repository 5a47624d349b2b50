package chi

import (
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// ListItemsParams are the query parameters of GET /api/v1/items.
type ListItemsParams struct {
	Q        *string
	Type     []string
	Platform []string
	PageSize *int
	Page     *int
}

// bindListItemsParams reads form-style exploded query parameters.
// Unparseable page and page_size values are dropped, not rejected.
func bindListItemsParams(values url.Values) (ListItemsParams, error) {
	var p ListItemsParams

	if err := runtime.BindQueryParameter("form", true, false, "q", values, &p.Q); err != nil {
		return p, err //nolint:wrapcheck // runtime errors name the parameter
	}
	if err := runtime.BindQueryParameter("form", true, false, "type", values, &p.Type); err != nil {
		return p, err //nolint:wrapcheck // runtime errors name the parameter
	}
	if err := runtime.BindQueryParameter("form", true, false, "platform", values, &p.Platform); err != nil {
		return p, err //nolint:wrapcheck // runtime errors name the parameter
	}

	var size int
	if err := runtime.BindQueryParameter("form", true, false, "page_size", values, &size); err == nil && values.Has("page_size") {
		p.PageSize = &size
	}
	var page int
	if err := runtime.BindQueryParameter("form", true, false, "page", values, &page); err == nil && values.Has("page") {
		p.Page = &page
	}

	return p, nil
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
