// Package csvio reads recorder log CSV files into tables and writes sampled tables back out
//
// Reading tolerates a leading byte order mark (UTF-8 or UTF-16), pads short rows
// with empty cells and rejects rows wider than the header. Writing goes through a
// temp file in the destination directory so a failed run leaves no partial output
package csvio
