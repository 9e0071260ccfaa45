// Package serialization provides the encoding pipeline for persisted traces:
// a pluggable codec (JSON or MessagePack) followed by optional compression
// (gzip or zstd) and optional AES-GCM encryption. Step traces compress well
// because consecutive steps repeat most metadata keys.
package serialization

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// CompressionType selects the compression stage.
type CompressionType string

const (
	CompressionNone CompressionType = "none"
	CompressionGzip CompressionType = "gzip"
	CompressionZstd CompressionType = "zstd"
)

// Config holds serializer settings.
type Config struct {
	Codec       Codec
	Compression CompressionType
	// EncryptKey enables AES-GCM when set; must be a 32-byte AES-256 key.
	EncryptKey []byte
}

// Serializer runs the full encode-compress-encrypt pipeline and its inverse.
type Serializer struct {
	config Config
}

// New creates a serializer with the given configuration.
func New(config Config) *Serializer {
	if config.Codec == nil {
		config.Codec = NewMsgPackCodec()
	}
	return &Serializer{config: config}
}

// Default creates a serializer using MessagePack with zstd compression, the
// configuration the trace repositories use unless told otherwise.
func Default() *Serializer {
	return New(Config{
		Codec:       NewMsgPackCodec(),
		Compression: CompressionZstd,
	})
}

// Serialize encodes, compresses, and encrypts v.
func (s *Serializer) Serialize(v interface{}) ([]byte, error) {
	data, err := s.config.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("codec encoding failed: %w", err)
	}

	data, err = s.compress(data)
	if err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}

	if len(s.config.EncryptKey) > 0 {
		data, err = s.encrypt(data)
		if err != nil {
			return nil, fmt.Errorf("encryption failed: %w", err)
		}
	}
	return data, nil
}

// Deserialize decrypts, decompresses, and decodes data into v.
func (s *Serializer) Deserialize(data []byte, v interface{}) error {
	var err error

	if len(s.config.EncryptKey) > 0 {
		data, err = s.decrypt(data)
		if err != nil {
			return fmt.Errorf("decryption failed: %w", err)
		}
	}

	data, err = s.decompress(data)
	if err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}

	if err := s.config.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("codec decoding failed: %w", err)
	}
	return nil
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

// encrypt seals data with AES-GCM, prepending the nonce.
func (s *Serializer) encrypt(data []byte) ([]byte, error) {
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

func (s *Serializer) decrypt(data []byte) ([]byte, error) {
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, fmt.Errorf("invalid ciphertext size")
	}
	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (s *Serializer) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.config.EncryptKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
