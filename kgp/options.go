package kgp

import (
	"strconv"
	"strings"

	jsp "github.com/buger/jsonparser"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultOptions mirrors the DefaultOptions convention the reference
// stack uses for its pipe/speaker options: a ready-to-use value
// callers copy and adjust, rather than a builder chain.
var DefaultOptions = Options{
	Logger: &log.Logger,
	Port:   2671,
}

// Options configures a Session. Modify a copy of DefaultOptions (or
// build your own) and pass it to NewSession; Options is read once at
// session start and must not be mutated concurrently afterwards.
type Options struct {
	Logger *zerolog.Logger // if nil, logging is disabled

	Host string // server host; a "ws"-prefixed host selects the WebSocket transport
	Port int    // server port; ignored for WebSocket hosts

	Name    string   // optional client name, sent as info:name
	Authors []string // optional author list, sent as info:authors
	Token   string   // optional auth token, sent as auth:token

	Debug bool // log every inbound/outbound line
}

// LoadOptions extracts an Options from a JSON document using
// allocation-light field lookups (github.com/buger/jsonparser)
// instead of a full encoding/json unmarshal, the same way the
// reference stack's own json helpers hand-parse fields. Unset fields
// keep the corresponding field from base.
//
// Expected shape:
//
//	{"host": "...", "port": 2671, "name": "...", "token": "...",
//	 "authors": ["...", "..."], "debug": false}
func LoadOptions(base Options, data []byte) (Options, error) {
	opts := base

	if v, err := jsp.GetString(data, "host"); err == nil {
		opts.Host = v
	}
	if v, err := jsp.GetInt(data, "port"); err == nil {
		opts.Port = int(v)
	}
	if v, err := jsp.GetString(data, "name"); err == nil {
		opts.Name = v
	}
	if v, err := jsp.GetString(data, "token"); err == nil {
		opts.Token = v
	}
	if v, err := jsp.GetBoolean(data, "debug"); err == nil {
		opts.Debug = v
	}

	var authors []string
	_, _ = jsp.ArrayEach(data, func(val []byte, typ jsp.ValueType, _ int, _ error) {
		if typ == jsp.String {
			authors = append(authors, string(val))
		}
	}, "authors")
	if len(authors) > 0 {
		opts.Authors = authors
	}

	return opts, nil
}

// Addr renders host:port for the configured transport target.
func (o *Options) Addr() string {
	if o.Port == 0 || strings.HasPrefix(o.Host, "ws") {
		return o.Host
	}
	return o.Host + ":" + strconv.Itoa(o.Port)
}
