package build

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"pcbanai/core/internal/domain"
)

// EncodeShareCode serializes the selection's slot -> ids projection into a
// URL-safe token. Only ids travel; the receiving side resolves them against
// the current component list, so prices stay fresh.
func EncodeShareCode(s *Selection) (string, error) {
	payload, err := json.Marshal(s.IDsBySlot())
	if err != nil {
		return "", fmt.Errorf("failed to encode build: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// DecodeShareCode reverses EncodeShareCode. Unknown slot names are dropped
// rather than failing the whole code.
func DecodeShareCode(code string) (map[domain.Category][]string, error) {
	payload, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("malformed share code: %w", err)
	}

	var decoded map[domain.Category][]string
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("malformed share code: %w", err)
	}

	ids := make(map[domain.Category][]string, len(decoded))
	for category, slotIDs := range decoded {
		if !category.IsValid() || len(slotIDs) == 0 {
			continue
		}
		ids[category] = slotIDs
	}
	return ids, nil
}
