package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Field extraction is deliberately defensive: Freqtrade's REST responses
// change field names between versions, so every function here is total over
// any decoded JSON value and degrades to a readable string rather than
// failing the whole report over one missing key.

// Status returns the bot state text and open trade count from a status
// payload. Non-object payloads are stringified with an "n/a" trade count.
func Status(payload any) (state, trades string) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return Stringify(payload), "n/a"
	}

	state = "unknown"
	if v, ok := firstTruthy(obj, "status", "state"); ok {
		state = Stringify(v)
	}

	if open, present := obj["open_trades"]; present && open != nil {
		if list, ok := open.([]any); ok {
			return state, strconv.Itoa(len(list))
		}
		return state, Stringify(open)
	}
	if v, present := obj["trades"]; present {
		return state, Stringify(v)
	}
	return state, "n/a"
}

// Profit returns absolute and percentage profit strings. The absolute value
// is the first non-zero candidate among profit_total/profit_sum/profit_abs
// (default 0) rendered with 8 decimals when numeric; the percentage comes
// from profit_pct/profit_percent/profit_ratio scaled by 100 with 2 decimals.
func Profit(payload any) (abs, pct string) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return Stringify(payload), "n/a"
	}

	absVal := any(0.0)
	if v, ok := firstTruthy(obj, "profit_total", "profit_sum", "profit_abs"); ok {
		absVal = v
	}
	if f, ok := toFloat(absVal); ok {
		abs = strconv.FormatFloat(f, 'f', 8, 64)
	} else {
		abs = Stringify(absVal)
	}

	pct = "n/a"
	if v, ok := firstTruthy(obj, "profit_pct", "profit_percent", "profit_ratio"); ok {
		if f, ok := toFloat(v); ok {
			pct = strconv.FormatFloat(f*100, 'f', 2, 64) + "%"
		} else {
			pct = Stringify(v)
		}
	}
	return abs, pct
}

// Balance builds a short "CUR: amount" summary from a balance payload.
// The wallet section is the first non-empty of wallets/balance/total, or the
// payload itself. At most 5 currencies are listed, in sorted order so the
// output is stable across map iterations. If no entries can be built the
// section is dumped as JSON, truncated to 200 characters.
func Balance(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return Stringify(payload)
	}

	section := any(obj)
	if v, ok := firstTruthy(obj, "wallets", "balance", "total"); ok {
		section = v
	}

	if m, ok := section.(map[string]any); ok {
		currencies := make([]string, 0, len(m))
		for cur := range m {
			currencies = append(currencies, cur)
		}
		sort.Strings(currencies)

		parts := make([]string, 0, len(currencies))
		for _, cur := range currencies {
			if len(parts) == 5 {
				break
			}
			val := m[cur]
			if inner, ok := val.(map[string]any); ok {
				amount, _ := firstTruthy(inner, "total", "available", "free")
				parts = append(parts, cur+": "+Stringify(amount))
			} else {
				parts = append(parts, cur+": "+Stringify(val))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}

	dump, err := json.Marshal(section)
	if err != nil {
		return fmt.Sprint(section)
	}
	// Truncate on a rune boundary; currency names may be multi-byte.
	if runes := []rune(string(dump)); len(runes) > 200 {
		return string(runes[:200])
	}
	return string(dump)
}

// Stringify renders a decoded JSON value as display text: strings verbatim,
// numbers without exponent notation, null as "null", composites as JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// firstTruthy returns the first non-empty value among keys. Zero numbers,
// empty strings, false, null and empty collections are skipped so that a
// present-but-useless field falls through to the next candidate.
func firstTruthy(obj map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && truthy(v) {
			return v, true
		}
	}
	return nil, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
