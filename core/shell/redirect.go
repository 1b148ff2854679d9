package shell

import "errors"

// RedirectMarker is the only redirection operator the interpreter knows.
// Append, input, and stderr redirection are deliberately unsupported.
const RedirectMarker = ">"

// ErrMissingRedirectTarget reports a trailing marker with no filename
// after it. The original would have passed a null filename to open; here
// it is an explicit parse error and the command is not launched.
var ErrMissingRedirectTarget = errors.New("syntax error: expected filename after '>'")

// ExtractRedirect scans tokens left to right for the first redirection
// marker. On a match the argument list is truncated at the marker and the
// following token becomes the target filename; any tokens after the
// filename are silently dropped, a documented limitation. Only the first
// marker is special; the scan stops there.
//
// With no marker present the tokens come back unchanged and target is
// empty.
func ExtractRedirect(tokens []string) (argv []string, target string, err error) {
	for i, tok := range tokens {
		if tok != RedirectMarker {
			continue
		}
		if i+1 >= len(tokens) {
			return nil, "", ErrMissingRedirectTarget
		}
		return tokens[:i], tokens[i+1], nil
	}

	return tokens, "", nil
}
