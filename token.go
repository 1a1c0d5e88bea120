package hxtable

import (
	"errors"

	"github.com/pthm/hxtable/lib/statetoken"
)

// TokenCodec is an alias for statetoken.Codec for convenience.
type TokenCodec = statetoken.Codec

// NewTokenCodec creates a state token codec with the given key.
func NewTokenCodec(key []byte) (*TokenCodec, error) {
	return statetoken.New(key)
}

// StateCodec couples a token codec with table defaults, persisting the same
// flat optional fields as ParamCodec but as a single opaque string. Use it
// when state travels through a hidden form field, a cookie, or an external
// store instead of the URL.
type StateCodec struct {
	params ParamCodec
	codec  *TokenCodec
	opaque bool
}

// NewStateCodec creates a token-backed state codec. Panics if cfg is
// invalid; returns an error only for an unusable key.
func NewStateCodec(cfg Config, key []byte) (*StateCodec, error) {
	codec, err := statetoken.New(key)
	if err != nil {
		return nil, err
	}
	return &StateCodec{params: NewParamCodec(cfg), codec: codec}, nil
}

// Opaque switches the codec to encrypted tokens (fields hidden from the
// client, not just tamper-proof).
func (sc *StateCodec) Opaque() *StateCodec {
	sc.opaque = true
	return sc
}

// Encode packs the state into a token. Fields equal to their defaults are
// elided before packing, so the default state produces the smallest token.
func (sc *StateCodec) Encode(page PageState, sort SortState) (string, error) {
	fields := map[string]any{}
	cfg := sc.params.cfg
	if page.Index != 0 {
		fields[ParamPageIndex] = page.Index
	}
	if page.Size != cfg.DefaultPageSize {
		fields[ParamPageSize] = page.Size
	}
	if sort.Column != cfg.DefaultSort.Column {
		fields[ParamSortID] = sort.Column
	}
	if sort.Desc != cfg.DefaultSort.Desc {
		fields[ParamSortDesc] = sort.Desc
	}

	token, err := sc.codec.Encode(fields, sc.opaque)
	if err != nil {
		return "", wrapTokenError(err)
	}
	return token, nil
}

// Decode unpacks a token into state. Like ParamCodec.Decode it is total:
// a malformed, tampered, or otherwise undecodable token (and any invalid
// field inside a valid one) falls back to the configured defaults.
func (sc *StateCodec) Decode(token string) (PageState, SortState) {
	cfg := sc.params.cfg
	page := cfg.DefaultPage()
	sort := cfg.DefaultSort

	if token == "" {
		return page, sort
	}
	fields, err := sc.codec.Decode(token, sc.opaque)
	if err != nil {
		return page, sort
	}

	if n, ok := asInt(fields[ParamPageIndex]); ok && n >= 0 {
		page.Index = n
	}
	if n, ok := asInt(fields[ParamPageSize]); ok && containsSize(cfg.PageSizeOptions, n) {
		page.Size = n
	}
	if s, ok := fields[ParamSortID].(string); ok && s != "" {
		sort.Column = s
	}
	if b, ok := fields[ParamSortDesc].(bool); ok {
		sort.Desc = b
	}

	return page, sort
}

// asInt coerces the integer widths msgpack may hand back for a map value.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}

// wrapTokenError maps statetoken sentinels onto hxtable sentinels.
func wrapTokenError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, statetoken.ErrInvalidFormat) {
		return ErrInvalidFormat
	}
	if errors.Is(err, statetoken.ErrSignatureInvalid) {
		return ErrSignatureInvalid
	}
	if errors.Is(err, statetoken.ErrDecryptFailed) {
		return ErrDecryptFailed
	}
	return err
}
