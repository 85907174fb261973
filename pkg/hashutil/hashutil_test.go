package hashutil_test

import (
	"encoding/hex"
	"testing"

	"github.com/rohmanhakim/cloudmeta/pkg/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func TestHashBytes_SHA256(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "simple string",
			data:     []byte("hello world"),
			expected: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			name:     "binary data",
			data:     []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe, 0xfd, 0xfc},
			expected: "fed271e1776a1c254c9e8ea187937d24418e1d01781eee828507725de159dd58",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := hashutil.HashBytes(tt.data, hashutil.HashAlgoSHA256)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHashBytes_BLAKE3(t *testing.T) {
	data := []byte("instance user data")
	expected := blake3.Sum256(data)

	result, err := hashutil.HashBytes(data, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(expected[:]), result)
}

func TestHashBytes_UnsupportedAlgo(t *testing.T) {
	_, err := hashutil.HashBytes([]byte("data"), "md5")
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	fp, err := hashutil.Fingerprint([]byte("hello world"), hashutil.HashAlgoSHA256)
	require.NoError(t, err)
	assert.Len(t, fp, 12)
	assert.Equal(t, "b94d27b9934d", fp)
}

func TestFingerprint_UnsupportedAlgo(t *testing.T) {
	_, err := hashutil.Fingerprint([]byte("data"), "crc32")
	assert.Error(t, err)
}
