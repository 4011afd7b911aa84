package crypto

const (
	// KeySize is the size of an AES-256 / HMAC-SHA-256 key in bytes.
	KeySize = 32
	// IVSize is the size of a CBC initialization vector in bytes,
	// equal to the AES block size.
	IVSize = 16
	// TagSize is the size of an HMAC-SHA-256 tag in bytes.
	TagSize = 32
	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	// MinBlobSize is the smallest length a sealed blob can have:
	// a 16-byte IV followed by a 32-byte tag. Anything shorter is
	// categorically invalid, independent of key or content.
	MinBlobSize = IVSize + TagSize
)
