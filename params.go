package hxtable

import (
	"net/url"
	"strconv"
)

// Query parameter names for persisted table state.
const (
	ParamPageIndex = "pageIndex"
	ParamPageSize  = "pageSize"
	ParamSortID    = "sortId"
	ParamSortDesc  = "sortDesc"
)

// ParamCodec maps table state to and from flat query parameters.
//
// Encoding is canonical: any field equal to its configured default is
// omitted, so the default state encodes to an empty set of values and URLs
// stay minimal. Decoding is total: a missing, malformed, or out-of-set field
// silently falls back to its default - persisted state is user-editable
// (it lives in the address bar) and must never produce an error.
type ParamCodec struct {
	cfg Config
}

// NewParamCodec creates a codec for the given configuration.
// Panics if the configuration is invalid.
func NewParamCodec(cfg Config) ParamCodec {
	return ParamCodec{cfg: cfg.normalize()}
}

// Encode returns the canonical query values for the given state.
func (pc ParamCodec) Encode(page PageState, sort SortState) url.Values {
	v := url.Values{}
	pc.EncodeInto(v, page, sort)
	return v
}

// EncodeInto writes the canonical encoding of the given state into v,
// clearing any state fields already present. Unrelated parameters are left
// untouched so table state can share a URL with other application state.
func (pc ParamCodec) EncodeInto(v url.Values, page PageState, sort SortState) {
	for _, key := range []string{ParamPageIndex, ParamPageSize, ParamSortID, ParamSortDesc} {
		v.Del(key)
	}

	if page.Index != 0 {
		v.Set(ParamPageIndex, strconv.Itoa(page.Index))
	}
	if page.Size != pc.cfg.DefaultPageSize {
		v.Set(ParamPageSize, strconv.Itoa(page.Size))
	}
	if sort.Column != pc.cfg.DefaultSort.Column {
		v.Set(ParamSortID, sort.Column)
	}
	if sort.Desc != pc.cfg.DefaultSort.Desc {
		v.Set(ParamSortDesc, strconv.FormatBool(sort.Desc))
	}
}

// Decode reads table state from query values, substituting the configured
// default for every absent or invalid field. It never fails.
func (pc ParamCodec) Decode(v url.Values) (PageState, SortState) {
	page := pc.cfg.DefaultPage()
	sort := pc.cfg.DefaultSort

	if raw := v.Get(ParamPageIndex); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			page.Index = n
		}
	}
	if raw := v.Get(ParamPageSize); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && containsSize(pc.cfg.PageSizeOptions, n) {
			page.Size = n
		}
	}
	if raw := v.Get(ParamSortID); raw != "" {
		sort.Column = raw
	}
	if raw := v.Get(ParamSortDesc); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			sort.Desc = b
		}
	}

	return page, sort
}
