package models

// EncryptionScheme names the common-encryption scheme of a sample.
type EncryptionScheme uint8

const (
	SchemeClear EncryptionScheme = iota
	SchemeAESCTRCenc
	SchemeAESCTRCens
	SchemeAESCBCCbc1
	SchemeAESCBCCbcs
)

// EncryptionPattern carries the encrypted/clear block counts of pattern
// encryption (cens, cbcs). Both zero means the whole payload is encrypted.
type EncryptionPattern struct {
	Encrypted uint32
	Clear     uint32
}

// DecryptRequest is one sample handed to an adapter. Adapters that decrypt
// in-process write the clear text back into Buffer.
type DecryptRequest struct {
	Buffer         []byte
	Scheme         EncryptionScheme
	Pattern        EncryptionPattern
	IV             []byte
	KeyID          KeyID
	InitWithLast15 uint32
}

// SessionRequest describes a license session an adapter should create.
type SessionRequest struct {
	LicenseType  int32
	InitDataType string
	InitData     []byte
	CustomData   []byte
}
