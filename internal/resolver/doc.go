// Package resolver locates the configuration files handed to external tools
// and reads the project manifest.
//
// Resolution is a single existence check: a same-named regular file in the
// search root wins, otherwise the bundled default is used. The file's
// content is never inspected, so a malformed project config is passed to
// the tool unchanged and the tool reports the problem itself.
package resolver
