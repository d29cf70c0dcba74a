// Package labels holds the first element of every message array.
package labels

const (
	EVENT  = "EVENT"
	REQ    = "REQ"
	CLOSE  = "CLOSE"
	OK     = "OK"
	EOSE   = "EOSE"
	NOTICE = "NOTICE"
)
