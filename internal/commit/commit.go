// Package commit implements the commitment primitive underlying the fairness
// protocol: a SHA-256 binding of a subject string and a random salt, published
// up front and checked once the underlying data is revealed.
package commit

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// saltBytes is the entropy of a fresh salt (256 bits)
const saltBytes = 32

// Commit computes the hex-encoded SHA-256 commitment over subject and salt
func Commit(subject, salt string) string {
	sum := sha256.Sum256([]byte(subject + salt))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the commitment for the revealed subject and salt and
// compares it to the published one. This is a public-information recheck,
// not a secret comparison, so plain equality is sufficient.
func Verify(commitment, subject, salt string) bool {
	return commitment == Commit(subject, salt)
}

// NewSalt returns a fresh unpredictable salt, hex encoded
func NewSalt() string {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}

// AssignmentSubject builds the subject string for an assignment commitment.
// Faction names are sorted first so verification does not depend on the
// order the hand was dealt in.
func AssignmentSubject(playerName string, factionNames []string) string {
	names := make([]string, len(factionNames))
	copy(names, factionNames)
	sort.Strings(names)
	return playerName + ":" + strings.Join(names, ",")
}

// SelectionSubject builds the subject string for a selection commitment
func SelectionSubject(playerName, factionName string) string {
	return playerName + ":" + factionName
}
