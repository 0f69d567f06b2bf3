// Package generator builds random strings from toggled character classes.
package generator

import (
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/tuikit/internal/model"
)

// Alphabets for each character class.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Numbers   = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Source supplies random indexes in [0, n).
type Source interface {
	Intn(n int) int
}

// Generator produces random strings. It is not a secure generator.
type Generator struct {
	rnd Source
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))} // #nosec G404
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src Source) *Generator {
	return &Generator{rnd: src}
}

// Charset concatenates the enabled alphabets in class order.
// It falls back to the lowercase alphabet when no class is enabled.
func Charset(classes model.Classes) string {
	var b strings.Builder
	if classes.Uppercase {
		b.WriteString(Uppercase)
	}
	if classes.Lowercase {
		b.WriteString(Lowercase)
	}
	if classes.Numbers {
		b.WriteString(Numbers)
	}
	if classes.Symbols {
		b.WriteString(Symbols)
	}
	if b.Len() == 0 {
		return Lowercase
	}
	return b.String()
}

// Generate draws length characters uniformly with replacement from the charset.
// Non-positive lengths yield an empty string.
func (g *Generator) Generate(classes model.Classes, length int) string {
	if length <= 0 {
		return ""
	}
	charset := Charset(classes)
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[g.rnd.Intn(len(charset))]
	}
	return string(result)
}
