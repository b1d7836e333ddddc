package resolver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aretw0/todomcp/pkg/domain"
)

var (
	ErrEmptyReply    = errors.New("empty reply")
	ErrMissingIntent = errors.New("reply has no intent")
	ErrTrailingData  = errors.New("reply has data after the JSON object")
)

type wireIntent struct {
	Intent *string         `json:"intent"`
	Params json.RawMessage `json:"params"`
}

// DecodeIntent parses a model reply into a ResolvedIntent.
//
// The trimmed reply must be exactly one JSON object of the form
// {"intent": string, "params": object}. Intents not in schema decode to the
// unknown sentinel; params of known intents are default-filled. Any error
// means the caller should fall back to domain.UnknownIntent().
func DecodeIntent(reply string, schema domain.ActionSchema) (domain.ResolvedIntent, error) {
	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return domain.UnknownIntent(), ErrEmptyReply
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var w wireIntent
	if err := dec.Decode(&w); err != nil {
		return domain.UnknownIntent(), fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.UnknownIntent(), ErrTrailingData
	}
	if w.Intent == nil {
		return domain.UnknownIntent(), ErrMissingIntent
	}

	params := map[string]any{}
	if raw := bytes.TrimSpace(w.Params); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		pdec := json.NewDecoder(bytes.NewReader(raw))
		pdec.UseNumber()
		if err := pdec.Decode(&params); err != nil {
			return domain.UnknownIntent(), fmt.Errorf("params must be an object: %w", err)
		}
	}

	spec, ok := schema.Lookup(strings.TrimSpace(*w.Intent))
	if !ok {
		return domain.UnknownIntent(), nil
	}

	for k, v := range params {
		params[k] = normalizeNumber(v)
	}

	return domain.ResolvedIntent{
		Action: spec.Name,
		Params: spec.ApplyDefaults(params),
	}, nil
}

// normalizeNumber turns json.Number into int when integral, float64 otherwise.
func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
