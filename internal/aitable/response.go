package aitable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const maxBodySnippet = 200

// DecodeError reports a response body that is not a single JSON value.
type DecodeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v (body: %s)", e.StatusCode, e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// decodeBody decodes exactly one JSON value. Numbers stay json.Number so
// record values survive a round trip unchanged.
func decodeBody(status int, body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newDecodeError(status, body, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, newDecodeError(status, body, errors.New("unexpected data after JSON value"))
	}
	return v, nil
}

func newDecodeError(status int, body []byte, err error) *DecodeError {
	snippet := body
	if len(snippet) > maxBodySnippet {
		cut := maxBodySnippet
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut]
	}
	return &DecodeError{StatusCode: status, Body: string(snippet), Err: err}
}

// envelopeValues extracts success/code/message from the AITable response
// envelope as logging key-value pairs.
func envelopeValues(body []byte) []any {
	if !gjson.ValidBytes(body) {
		return nil
	}
	var kv []any
	results := gjson.GetManyBytes(body, "success", "code", "message")
	for i, key := range []string{"success", "code", "message"} {
		if results[i].Exists() {
			kv = append(kv, key, results[i].Value())
		}
	}
	return kv
}

// rejected reports whether the envelope carries "success": false.
func rejected(body []byte) bool {
	r := gjson.GetBytes(body, "success")
	return r.Exists() && r.Type == gjson.False
}
