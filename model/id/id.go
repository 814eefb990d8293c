package id

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/melisma/melisma/log"
)

// NewRandom generates an auth-token value: 22 chars of base62, ~131 bits of
// entropy.
func NewRandom() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 22)
	if err != nil {
		log.Error("Could not generate new ID", err)
	}
	return id
}
