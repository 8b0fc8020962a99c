package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// keyVersion is hashed into every key. Bump it when the layout of cached
// documents changes so old entries are never read back.
const keyVersion = 1

// hashKey returns kind + ":" + the hex SHA-256 of the JSON encoding of
// parts.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(keyVersion)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// kindOf returns everything before the hash of a key, with scopes joined
// by underscores: "server:alignment:ab12" yields "server_alignment". Keys
// without a kind yield "misc".
func kindOf(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i <= 0 {
		return "misc"
	}
	kind := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return '_'
	}, key[:i])
	return kind
}
