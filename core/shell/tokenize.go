package shell

// Tokenize splits line on runs of space and horizontal tab. No other
// whitespace classes, no quoting, no escapes.
//
// At most capacity-1 tokens are produced; one slot is reserved for the
// argument-vector terminator handed to the child. Anything past the limit
// is silently dropped and reported through the returned flag: a
// documented limitation, not an error.
//
// Tokens are views into line's storage. Strings are immutable in Go so,
// unlike the classic strtok pattern, the views can't be clobbered by a
// later split.
func Tokenize(line string, capacity int) (tokens []string, truncated bool) {
	max := capacity - 1

	for start := 0; start < len(line); {
		if line[start] == ' ' || line[start] == '\t' {
			start++
			continue
		}

		end := start
		for end < len(line) && line[end] != ' ' && line[end] != '\t' {
			end++
		}

		if len(tokens) >= max {
			return tokens, true
		}

		tokens = append(tokens, line[start:end])
		start = end
	}

	return tokens, false
}
