/*
Package server implements msgpack IPC for wordplay searches.

The server reads msgpack requests from stdin and writes msgpack responses to
stdout, one value per message. Requests are processed synchronously with
timing info included in responses.

# IPC

Each request carries an ID and a command. A search request names two seeds
and an optional limit:

	{"id": "req_001", "cmd": "search", "s1": "dog", "s2": "school", "l": 10}

The response lists portmanteaus and rhymes in rank order, the number of word
pairs evaluated and the time taken in microseconds:

	{"id": "req_001", "s1": "dog", "s2": "school",
	 "portmanteaus": [{"grapheme_portmanteau": "labradormitory", ...}],
	 "rhymes": [...], "pairs": 412, "t": 5321}

A health check answers with a status:

	{"id": "h1", "cmd": "health"}
	{"id": "h1", "status": "ok"}

Failures carry a message, a code and, for unknown seeds, spelling suggestions:

	{"id": "req_002", "e": "unknown seed \"labrdor\"", "c": 404, "suggestions": ["labrador"]}

When it starts the server writes {"status": "ready"} before reading anything.
*/
package server

import "github.com/bastiangx/wordplay/pkg/pun"

// Commands understood by the server.
const (
	CmdSearch = "search"
	CmdHealth = "health"
)

// Error codes.
const (
	CodeBadRequest = 400
	CodeUnknown    = 404
	CodeTimeout    = 408
	CodeInternal   = 500
)

// Request is any incoming message; fields unused by Cmd are ignored.
type Request struct {
	ID    string `msgpack:"id"`
	Cmd   string `msgpack:"cmd"`
	Seed1 string `msgpack:"s1,omitempty"`
	Seed2 string `msgpack:"s2,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
}

// SearchResponse answers a search request.
type SearchResponse struct {
	ID           string                `msgpack:"id"`
	Seed1        string                `msgpack:"s1"`
	Seed2        string                `msgpack:"s2"`
	Portmanteaus []pun.PortmanteauView `msgpack:"portmanteaus"`
	Rhymes       []pun.RhymeView       `msgpack:"rhymes"`
	Pairs        int                   `msgpack:"pairs"`
	TimeTaken    int64                 `msgpack:"t"`
}

// StatusResponse answers health checks and signals readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID          string   `msgpack:"id"`
	Error       string   `msgpack:"e"`
	Code        int      `msgpack:"c"`
	Suggestions []string `msgpack:"suggestions,omitempty"`
}
