// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package fonts

import (
	"github.com/golang/freetype/truetype"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/blake2b"
)

const cacheEntries = 16

// Key identifies font contents independently of the file they came from.
type Key [blake2b.Size256]byte

// KeyOf hashes ttf.
func KeyOf(ttf []byte) Key {
	return blake2b.Sum256(ttf)
}

var parsed = mustCache(cacheEntries)

func mustCache(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

// parseCached parses ttf once per distinct content; every rung of a ladder
// shares the same *truetype.Font.
func parseCached(ttf []byte) (*truetype.Font, error) {
	key := KeyOf(ttf)
	if v, ok := parsed.Get(key); ok {
		return v.(*truetype.Font), nil
	}
	fnt, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	parsed.Add(key, fnt)
	return fnt, nil
}
