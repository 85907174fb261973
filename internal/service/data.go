package service

import (
	"github.com/rohmanhakim/cloudmeta/pkg/pathutil"
)

// DefaultVersion is the provider version used when a caller passes an empty
// version string.
const DefaultVersion = "latest"

// Payload is the tagged value a backend returns for a path: either raw bytes
// or an already-parsed document, never both. Keeping the variant explicit
// avoids runtime type inspection when values come back out of the cache.
type Payload struct {
	raw        []byte
	doc        map[string]any
	structured bool
}

// NewRawPayload wraps an opaque blob fetched from a backend.
func NewRawPayload(raw []byte) Payload {
	return Payload{raw: raw}
}

// NewDocumentPayload wraps a document a backend already parsed itself.
func NewDocumentPayload(doc map[string]any) Payload {
	return Payload{doc: doc, structured: true}
}

// Raw returns the opaque bytes of a raw payload. Empty for structured
// payloads.
func (p Payload) Raw() []byte {
	return p.raw
}

// Document returns the parsed document of a structured payload. Nil for raw
// payloads.
func (p Payload) Document() map[string]any {
	return p.doc
}

// Structured reports whether the backend returned a parsed document.
func (p Payload) Structured() bool {
	return p.structured
}

// Empty reports whether the payload carries no data.
func (p Payload) Empty() bool {
	if p.structured {
		return len(p.doc) == 0
	}
	return len(p.raw) == 0
}

// Path convention shared by all backends. Every path is normalized before
// being used as a cache key or handed to a backend.

func contentPath(category string, name string) string {
	return pathutil.Join(category, "content", name)
}

func userDataPath(category string, version string) string {
	return pathutil.Join(category, version, "user_data")
}

func metaDataPath(category string, version string) string {
	return pathutil.Join(category, version, "meta_data.json")
}

func passwordPath(version string) string {
	return pathutil.Join("openstack", version, "password")
}

func orDefaultVersion(version string) string {
	if version == "" {
		return DefaultVersion
	}
	return version
}
