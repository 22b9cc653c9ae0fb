package publish

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
)

// MaxKeyLength bounds client supplied Idempotency-Key headers.
const MaxKeyLength = 200

// DeriveKey fingerprints a draft: sha256 of the draft id and the canonical
// JSON of its data. Any content change gives a new key.
func DeriveKey(draftID uuid.UUID, data draft.Data) (string, error) {
	canonical, err := canonicalJSON(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append([]byte(draftID.String()+":"), canonical...))
	return hex.EncodeToString(sum[:]), nil
}

// canonicalJSON re-encodes v with sorted object keys and no insignificant
// whitespace. Numbers keep their literal text.
func canonicalJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
