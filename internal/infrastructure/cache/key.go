// Package cache implements the response caching subsystem: deterministic
// key derivation, an in-process backend with per-entry expiry, a Redis
// backend, a memoization helper for read paths, and pattern-based
// invalidation for write paths.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// DeriveKey maps a namespace and a parameter set to the cache key
// "<namespace>:<hex digest>". Parameters are serialized to a canonical form
// with map keys sorted recursively, so logically equal parameter sets always
// derive the same key regardless of construction order. Nil values and
// non-finite floats serialize as fixed sentinel tokens instead of being
// skipped. An empty or nil parameter set serializes as "{}".
//
// The digest is SHA-256: wider than strictly needed for a read cache, but
// parameters include user-supplied query strings and a 256-bit digest makes
// deliberate collisions a non-concern.
func DeriveKey(namespace string, params map[string]any) string {
	var b strings.Builder
	writeCanonical(&b, params)
	sum := sha256.Sum256([]byte(b.String()))
	return namespace + ":" + hex.EncodeToString(sum[:])
}

func writeCanonical(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			writeCanonical(b, t[k])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, e)
		}
		b.WriteByte(']')
	case string:
		b.WriteString(strconv.Quote(t))
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case int:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case float32:
		writeFloat(b, float64(t))
	case float64:
		writeFloat(b, t)
	default:
		writeReflected(b, v)
	}
}

// writeFloat keeps non-finite values representable; encoding/json would
// reject them and silently dropping them would break key determinism.
func writeFloat(b *strings.Builder, f float64) {
	switch {
	case math.IsNaN(f):
		b.WriteString(`"NaN"`)
	case math.IsInf(f, 1):
		b.WriteString(`"+Inf"`)
	case math.IsInf(f, -1):
		b.WriteString(`"-Inf"`)
	default:
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}

// writeReflected handles pointers (dereferenced, nil becomes the null
// sentinel) and falls back to encoding/json, which already sorts map keys.
func writeReflected(b *strings.Builder, v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			b.WriteString("null")
			return
		}
		writeCanonical(b, rv.Elem().Interface())
		return
	}
	if data, err := json.Marshal(v); err == nil {
		b.Write(data)
		return
	}
	b.WriteString(strconv.Quote(fmt.Sprint(v)))
}
