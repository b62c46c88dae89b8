package mapper

import (
	"context"
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"
)

const fingerprintContentType = "application/json"

// Fingerprint returns a hex-encoded BLAKE2b-256 digest of the plain form of
// model. Object keys are encoded in sorted order, so two models holding the
// same data under the same options share a fingerprint regardless of how
// they were built.
func (m *Mapper) Fingerprint(ctx context.Context, model, options any) (string, error) {
	plain, err := m.ToJS(ctx, model, options)
	if err != nil {
		return "", err
	}
	if IsIgnored(plain) {
		return "", ErrIgnored
	}

	canonical, err := json.Marshal(plain)
	if err != nil {
		return "", newCodecError(ErrMarshal, fingerprintContentType, err)
	}

	sum := blake2b.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
