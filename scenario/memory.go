package scenario

import "fmt"

// MemoryFile is one bootstrapped memory file the generator seeds a run's
// working memory directory with. Key is the file stem (no extension,
// no path separators); Content is free-form markdown.
type MemoryFile struct {
	key     string
	content string
}

// NewMemoryFile validates and constructs a MemoryFile.
func NewMemoryFile(key, content string) (*MemoryFile, error) {
	if key == "" {
		return nil, fmt.Errorf("scenario: memory file key is required")
	}
	for _, r := range key {
		if r == '/' || r == '\\' || r == '.' {
			return nil, fmt.Errorf("scenario: memory file key %q must not contain path separators", key)
		}
	}
	return &MemoryFile{key: key, content: content}, nil
}

func (m *MemoryFile) Key() string     { return m.key }
func (m *MemoryFile) Content() string { return m.content }

type memoryFileJSON struct {
	Key     string `json:"key"`
	Content string `json:"content"`
}

// MarshalJSON implements json.Marshaler.
func (m *MemoryFile) MarshalJSON() ([]byte, error) {
	return marshalJSON(memoryFileJSON{Key: m.key, Content: m.content})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MemoryFile) UnmarshalJSON(data []byte) error {
	var wire memoryFileJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return err
	}
	*m = MemoryFile{key: wire.Key, content: wire.Content}
	return nil
}
