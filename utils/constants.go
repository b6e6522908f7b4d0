package utils

import (
	"time"
)

// Interview provisioning constants
const (
	// AccessCodeLength is the length of public interview access codes
	AccessCodeLength = 24

	// AccessCodeAlphabet is the base36 alphabet access codes are drawn from
	AccessCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	// QuestionnaireStructureCacheTTL is the time-to-live for cached flattened
	// questionnaire structures (10 minutes)
	QuestionnaireStructureCacheTTL = 10 * time.Minute

	// QuestionnaireStructureCacheKey is the cache key prefix for flattened
	// questionnaire structures
	QuestionnaireStructureCacheKey = "questionnaire_structure"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
