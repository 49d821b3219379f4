// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Idempotency-Key support for the public submission
// endpoints (applications, inspections, support tickets). The validator
// checks the header, and when a lookup is configured it asks whether the same
// client already completed the same submission. A hit is stashed on the
// context so the handler can answer with the stored record instead of
// creating a duplicate, and so the rate limiter lets the replay through.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/warri-apartment-hunt/internal/session"
)

// HeaderIdempotencyKey carries the client-chosen key for a submission.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderSessionID names the client session. It scopes view state, idempotency
// records and rate-limit buckets.
const HeaderSessionID = "X-Session-ID"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemRecord = "idem.record" // string: id of the record a replay should return
	ctxKeyRateBypass = "rate.bypass"
)

// ClientID returns the normalized session id of the request.
func ClientID(c *gin.Context) string {
	return session.NormalizeID(c.GetHeader(HeaderSessionID))
}

// GetIdempotencyKey returns the validated key, if the request carried one.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// ReplayRecordID returns the id of the record created by an earlier request
// with the same key. ok is false for first-time requests.
func ReplayRecordID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemRecord)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the request repeats a completed submission.
func IsReplay(c *gin.Context) bool {
	_, ok := ReplayRecordID(c)
	return ok
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// IdempotencyLookup resolves (clientID, route, key) to the id of the record
// a previous request created. route is the matched Gin route, so the
// implementation decides which routes take part. Expired records must not be
// reported. Errors are ignored by the validator and the request proceeds as a
// first attempt.
type IdempotencyLookup func(ctx context.Context, clientID, route, key string, now time.Time) (recordID string, ok bool, err error)

// IdempotencyValidator validates the Idempotency-Key header on POST requests
// and runs lookup to detect replays. Requests without the header pass
// through untouched; a malformed key is rejected with 400.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			id, ok, err := lookup(c.Request.Context(), ClientID(c), c.FullPath(), key, time.Now().UTC())
			if err == nil && ok {
				c.Set(ctxKeyIdemRecord, id)
				c.Set(ctxKeyRateBypass, true)
				idemReplays.WithLabelValues(c.FullPath()).Inc()
			}
		}

		c.Next()
	}
}
