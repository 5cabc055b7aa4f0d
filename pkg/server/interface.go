/*
Package server implements msgpack IPC for job title finding.

Clients write msgpack maps to stdin and read one msgpack map per request from
stdout. The first message written by the server is a ready signal:

	{"status": "ready"}

Every request carries an id, echoed in the response, and an action. An empty
action means find.

Find titles in a text, longest match resolution unless raw is set:

	{"id": "r1", "action": "find", "t": "Vice President & CEO"}
	{"id": "r1", "m": [{"s": 0, "e": 14, "w": "Vice President"}, {"s": 5, "e": 20, "w": "President & CEO"}], "c": 2, "t": 38}

Offsets are byte offsets into t, e exclusive. t in the response is the time
taken in microseconds.

Scan several texts at once:

	{"id": "r2", "action": "batch", "ts": ["I am the CFO", "no titles here"]}
	{"id": "r2", "r": [[{"s": 9, "e": 12, "w": "CFO"}], []], "c": 1, "t": 51}

Complete a partial title:

	{"id": "r3", "action": "lookup", "p": "vice p", "l": 5}
	{"id": "r3", "s": [{"w": "Vice President", "r": 1}], "c": 1, "t": 12}

Inspect and rebuild the shared finder:

	{"id": "r4", "action": "info"}
	{"id": "r5", "action": "reload"}

Failures are reported with an HTTP-like code:

	{"id": "r6", "e": "text exceeds 65536 bytes", "c": 413}
*/
package server

import "github.com/bastiangx/titleserve/pkg/suggest"

// Request is the union of all client messages.
type Request struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"action,omitempty"`
	Text   string   `msgpack:"t,omitempty"`
	Texts  []string `msgpack:"ts,omitempty"`
	Raw    bool     `msgpack:"raw,omitempty"`
	Prefix string   `msgpack:"p,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
}

// MatchResult is one title occurrence.
type MatchResult struct {
	Start int    `msgpack:"s"`
	End   int    `msgpack:"e"`
	Text  string `msgpack:"w"`
}

// FindResponse answers find.
type FindResponse struct {
	ID        string        `msgpack:"id"`
	Matches   []MatchResult `msgpack:"m"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// BatchResponse answers batch. Results are aligned with the request texts;
// Count is the total number of matches.
type BatchResponse struct {
	ID        string          `msgpack:"id"`
	Results   [][]MatchResult `msgpack:"r"`
	Count     int             `msgpack:"c"`
	TimeTaken int64           `msgpack:"t"`
}

// LookupResponse answers lookup.
type LookupResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []suggest.Suggestion `msgpack:"s"`
	Count       int                  `msgpack:"c"`
	TimeTaken   int64                `msgpack:"t"`
}

// InfoResponse answers info.
type InfoResponse struct {
	ID         string `msgpack:"id"`
	Status     string `msgpack:"status"`
	Patterns   int    `msgpack:"patterns"`
	States     int    `msgpack:"states"`
	IgnoreCase bool   `msgpack:"ignore_case"`
	Backend    string `msgpack:"backend"`
	Builds     int    `msgpack:"builds"`
	Requests   int    `msgpack:"requests"`
}

// ReloadResponse answers reload.
type ReloadResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Patterns int    `msgpack:"patterns"`
}

// StatusMessage is the ready signal.
type StatusMessage struct {
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
