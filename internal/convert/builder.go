package convert

// logURLBase is the Tenhou viewer URL the converter fetches a game from.
const logURLBase = "https://tenhou.net/0/?log="

// LogURL returns the Tenhou log URL for an archive ID.
func LogURL(id string) string {
	return logURLBase + id
}

// Args builds the complete argument slice, program first:
//
//	<tool> -u https://tenhou.net/0/?log=<id> --no-review --mjai-out -
//
// --no-review skips the AI review pass and "--mjai-out -" sends the mjai
// event log to stdout.
func Args(toolPath, id string) []string {
	return []string{
		toolPath,
		"-u", LogURL(id),
		"--no-review",
		"--mjai-out", "-",
	}
}
