// Package index reads Tenhou scc*.html.gz index files and extracts the
// archive IDs of games played under one ruleset.
//
// Each decompressed line is a pipe-delimited record:
//
//	00:02 | 4 | 四鳳南喰赤－ | <a href="http://tenhou.net/0/?log=2023010100gm-00a9-0000-5aa0aa8f">牌譜</a> | ...
//
// Field 2 is the rule descriptor and field 3 carries the log link. Only
// records whose descriptor starts with [RulesetPrefix] are kept.
package index
