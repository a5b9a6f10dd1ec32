package oracle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

// Result is a decoded evaluation outcome.
type Result struct {
	Score      uint8
	ResultHash models.Hash256
}

// DecodeResult parses the raw callback payload, which must be
// "<score>,<0x-prefixed 64-hex-char hash>". Wrong shape, missing 0x
// prefix or wrong hash length are rejected here, at decode time; the
// caller decides how to absorb the failure. Scores above 100 are
// clamped.
func DecodeResult(raw []byte) (*Result, error) {
	payload := string(raw)
	score, hash, ok := strings.Cut(payload, ",")
	if !ok {
		return nil, fmt.Errorf("malformed result %q: expected \"<score>,<hash>\"", payload)
	}

	parsed, err := strconv.ParseUint(score, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed result %q: bad score: %w", payload, err)
	}
	if parsed > 100 {
		parsed = 100
	}

	resultHash, err := models.ParseHash256(hash)
	if err != nil {
		return nil, fmt.Errorf("malformed result %q: %w", payload, err)
	}

	return &Result{Score: uint8(parsed), ResultHash: resultHash}, nil
}
