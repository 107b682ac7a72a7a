package domain

// Envelope is the persisted result of sealing a secret with a key derived from that
// same secret. Every part is required to open it again; the secret itself is never stored.
type Envelope struct {
	Ciphertext []byte // Sealed secret without the tag
	Tag        []byte // AEAD authentication tag
	Nonce      []byte // Unique per encryption
	Salt       []byte // Fresh random scrypt salt per encryption
}

// Validate checks that every part of the envelope is present.
func (e *Envelope) Validate() error {
	if e == nil || len(e.Tag) == 0 || len(e.Nonce) == 0 || len(e.Salt) == 0 {
		return ErrInvalidEnvelope
	}
	return nil
}
